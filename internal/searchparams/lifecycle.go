package searchparams

import "github.com/shivam-bit/highlight/internal/types"

type lifecycleKey struct {
	liveSegment bool
	showLive    bool
}

// The live segment wins over the show-live toggle.
var lifecycleTable = map[lifecycleKey]types.SessionLifecycle{
	{liveSegment: true, showLive: true}:   types.SessionLifecycleAll,
	{liveSegment: true, showLive: false}:  types.SessionLifecycleAll,
	{liveSegment: false, showLive: true}:  types.SessionLifecycleAll,
	{liveSegment: false, showLive: false}: types.SessionLifecycleCompleted,
}

func SelectLifecycle(liveSegment, showLive bool) types.SessionLifecycle {
	return lifecycleTable[lifecycleKey{liveSegment: liveSegment, showLive: showLive}]
}
