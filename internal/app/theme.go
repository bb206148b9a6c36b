package app

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	liveBadgeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	sessionStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	viewedSessionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	selectedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236"))
	skeletonStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	dividerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	groupHeadingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Bold(true)
	groupTooltipStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true)
	optionNameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	matchStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("61")).Bold(true)
	toggleOnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true)
	toggleOffStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	searchFrameStyle   = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("69")).
				Padding(0, 1)
	toastInfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("29")).Bold(true)
	toastWarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("136")).Bold(true)
	toastErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("160")).Bold(true)
)
