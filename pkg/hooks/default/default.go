// Package defaulthooks provides the default hook wiring for the cleaner.
package defaulthooks

import (
	"github.com/vsweep/vsweep/pkg/cleaner/consts"
	"github.com/vsweep/vsweep/pkg/hooks"
	"github.com/vsweep/vsweep/pkg/logger"
)

// NewDefaultHooksManager creates a hooks manager with operation logging
// registered around every cleanup operation.
func NewDefaultHooksManager(log logger.Logger) (hooks.HookManagerInterface, error) {
	hm := hooks.NewHookManager()

	loggingHook := hooks.NewLoggingHook(log)
	if err := loggingHook.RegisterForOperations(hm, consts.AllOperations()); err != nil {
		return nil, err
	}

	return hm, nil
}
