// Package cleaner orchestrates editor-state cleanup runs.
package cleaner

import (
	"context"
	"fmt"

	"github.com/vsweep/vsweep/pkg/config"
	"github.com/vsweep/vsweep/pkg/editor"
	"github.com/vsweep/vsweep/pkg/fs"
	"github.com/vsweep/vsweep/pkg/guard"
	"github.com/vsweep/vsweep/pkg/hooks"
	"github.com/vsweep/vsweep/pkg/logger"
	"github.com/vsweep/vsweep/pkg/preserve"
	"github.com/vsweep/vsweep/pkg/report"
	"github.com/vsweep/vsweep/pkg/scan"
	"github.com/vsweep/vsweep/pkg/store"
	"github.com/vsweep/vsweep/pkg/telemetry"
)

// GuardProvider builds a safety guard for a preservation set. The guard
// is rebuilt per run because caller-supplied preservation patterns are
// part of its configuration.
type GuardProvider func(preservation preserve.PreservationSet) (guard.Guard, error)

// Cleaner interface provides editor-state cleanup functionality.
type Cleaner interface {
	// ListRoots returns the existing state roots for the given editors,
	// with the plugin home appended when it exists on disk.
	ListRoots(editors []editor.Variant) ([]editor.EnvironmentRoot, error)
	// ScanRoots enumerates and classifies every file under the given
	// editors' roots without mutating anything.
	ScanRoots(editors []editor.Variant, opts ...ScanOpts) (ScanReport, error)
	// Clean removes removable state for a single editor variant.
	Clean(ctx context.Context, params CleanParams) (CleanupResult, error)
	// CleanAll runs Clean for every configured editor.
	CleanAll(ctx context.Context, params CleanParams) ([]CleanupResult, error)
	// CleanPluginHome sweeps the plugin's dedicated environment directory.
	CleanPluginHome(ctx context.Context, params CleanParams) (CleanupResult, error)
	// RewriteTelemetry regenerates the telemetry identifiers in every
	// existing storage config of the variant.
	RewriteTelemetry(variant editor.Variant) ([]telemetry.Rewrite, error)
	// CleanStores deletes matching rows from the variant's state databases.
	CleanStores(ctx context.Context, variant editor.Variant, keyPatterns []string, opts ...StoreOpts) ([]store.CleanResult, error)
	// Init initializes vsweep configuration.
	Init(opts InitOpts) error
	// SetLogger sets the logger for this Cleaner instance.
	SetLogger(logger logger.Logger)
	// Hook management methods
	RegisterHook(operation string, hook hooks.Hook) error
}

// NewCleanerParams contains parameters for creating a new Cleaner
// instance. Config is required; every other field defaults to its real
// implementation when nil, so tests can inject exactly the mocks they
// need.
type NewCleanerParams struct {
	Config        *config.Config
	ConfigManager config.Manager
	FS            fs.FS
	Locator       editor.Locator
	Scanner       scan.Scanner
	Store         store.Cleaner
	Telemetry     telemetry.Mutator
	Reporter      report.Manager
	Logger        logger.Logger
	GuardProvider GuardProvider
	HookManager   hooks.HookManagerInterface // Optional: for testing with mocked hooks
}

type realCleaner struct {
	fs            fs.FS
	config        *config.Config
	configManager config.Manager
	locator       editor.Locator
	scanner       scan.Scanner
	store         store.Cleaner
	telemetry     telemetry.Mutator
	reporter      report.Manager
	logger        logger.Logger
	guardProvider GuardProvider
	hookManager   hooks.HookManagerInterface
}

// NewCleaner creates a new Cleaner instance.
func NewCleaner(params NewCleanerParams) (Cleaner, error) {
	if params.Config == nil {
		return nil, ErrNilConfig
	}

	fsInstance := params.FS
	if fsInstance == nil {
		fsInstance = fs.NewFS()
	}
	loggerInstance := params.Logger
	if loggerInstance == nil {
		loggerInstance = logger.NewNoopLogger()
	}
	configManager := params.ConfigManager
	if configManager == nil {
		configManager = config.NewManager(config.DefaultConfigPath())
	}
	locatorInstance := params.Locator
	if locatorInstance == nil {
		locatorInstance = editor.NewLocator(editor.NewLocatorParams{
			FS:         fsInstance,
			PluginHome: params.Config.PluginHome,
		})
	}
	scannerInstance := params.Scanner
	if scannerInstance == nil {
		scannerInstance = scan.NewScanner(scan.NewScannerParams{
			FS:     fsInstance,
			Logger: loggerInstance,
		})
	}
	storeInstance := params.Store
	if storeInstance == nil {
		storeInstance = store.NewCleaner(store.NewCleanerParams{
			FS:     fsInstance,
			Logger: loggerInstance,
		})
	}
	telemetryInstance := params.Telemetry
	if telemetryInstance == nil {
		telemetryInstance = telemetry.NewMutator(telemetry.NewMutatorParams{
			FS:     fsInstance,
			Logger: loggerInstance,
		})
	}
	reporterInstance := params.Reporter
	if reporterInstance == nil {
		reporterInstance = report.NewManager(fsInstance, params.Config)
	}
	guardProvider := params.GuardProvider
	if guardProvider == nil {
		cfg := params.Config
		guardProvider = func(preservation preserve.PreservationSet) (guard.Guard, error) {
			return guard.NewGuard(guard.NewGuardParams{
				FS:             fsInstance,
				ProtectedPaths: cfg.ProtectedPaths,
				Preservation:   preservation,
			})
		}
	}
	hookManager := params.HookManager
	if hookManager == nil {
		hookManager = hooks.NewHookManager()
	}

	return &realCleaner{
		fs:            fsInstance,
		config:        params.Config,
		configManager: configManager,
		locator:       locatorInstance,
		scanner:       scannerInstance,
		store:         storeInstance,
		telemetry:     telemetryInstance,
		reporter:      reporterInstance,
		logger:        loggerInstance,
		guardProvider: guardProvider,
		hookManager:   hookManager,
	}, nil
}

// VerbosePrint logs a formatted message using the current logger.
func (c *realCleaner) VerbosePrint(msg string, args ...interface{}) {
	c.logger.Logf(fmt.Sprintf(msg, args...))
}

// SetLogger sets the logger for this Cleaner instance.
func (c *realCleaner) SetLogger(logger logger.Logger) {
	c.logger = logger
}

// RegisterHook registers a hook for a specific operation.
func (c *realCleaner) RegisterHook(operation string, hook hooks.Hook) error {
	switch h := hook.(type) {
	case hooks.PostHook:
		return c.hookManager.RegisterPostHook(operation, h)
	case hooks.PreHook:
		return c.hookManager.RegisterPreHook(operation, h)
	case hooks.ErrorHook:
		return c.hookManager.RegisterErrorHook(operation, h)
	default:
		return fmt.Errorf("unsupported hook type")
	}
}

// preservationSet merges the configured preservation patterns with
// caller-supplied extras.
func (c *realCleaner) preservationSet(extra []string) (preserve.PreservationSet, error) {
	patterns := make([]string, 0, len(c.config.Preserve)+len(extra))
	patterns = append(patterns, c.config.Preserve...)
	patterns = append(patterns, extra...)
	return preserve.New(patterns)
}

// executeWithHooks executes an operation with pre and post hooks.
func (c *realCleaner) executeWithHooks(operationName string, params map[string]interface{}, operation func() error) error {
	ctx := &hooks.HookContext{
		OperationName: operationName,
		Parameters:    params,
		Results:       make(map[string]interface{}),
		Metadata:      make(map[string]interface{}),
	}
	// Execute pre-hooks (if hook manager is available)
	if err := c.executePreHooks(operationName, ctx); err != nil {
		return err
	}
	// Execute operation
	var resultErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				resultErr = fmt.Errorf("panic in %s: %v", operationName, r)
			}
		}()
		resultErr = operation()
	}()
	// Update context with results
	ctx.Error = resultErr
	if resultErr == nil {
		ctx.Results["success"] = true
	}
	// Execute post-hooks or error-hooks (if hook manager is available)
	if hookErr := c.executeHooks(operationName, ctx, resultErr); hookErr != nil {
		return hookErr
	}
	return resultErr
}

// executeWithHooksAndReturnResult executes an operation with pre and post hooks
// that returns a cleanup result.
func (c *realCleaner) executeWithHooksAndReturnResult(
	operationName string,
	params map[string]interface{},
	operation func() (CleanupResult, error),
) (CleanupResult, error) {
	ctx := &hooks.HookContext{
		OperationName: operationName,
		Parameters:    params,
		Results:       make(map[string]interface{}),
		Metadata:      make(map[string]interface{}),
	}
	// Execute pre-hooks (if hook manager is available)
	if err := c.executePreHooks(operationName, ctx); err != nil {
		return CleanupResult{}, err
	}
	// Execute operation
	var result CleanupResult
	var resultErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				resultErr = fmt.Errorf("panic in %s: %v", operationName, r)
			}
		}()
		result, resultErr = operation()
	}()
	// Update context with results
	ctx.Error = resultErr
	if resultErr == nil {
		ctx.Results["result"] = result
		ctx.Results["success"] = true
	}
	// Execute post-hooks or error-hooks (if hook manager is available)
	if hookErr := c.executeHooks(operationName, ctx, resultErr); hookErr != nil {
		return CleanupResult{}, hookErr
	}
	return result, resultErr
}

// executeWithHooksAndReturnRoots executes an operation with pre and post hooks
// that returns environment roots.
func (c *realCleaner) executeWithHooksAndReturnRoots(
	operationName string,
	params map[string]interface{},
	operation func() ([]editor.EnvironmentRoot, error),
) ([]editor.EnvironmentRoot, error) {
	ctx := &hooks.HookContext{
		OperationName: operationName,
		Parameters:    params,
		Results:       make(map[string]interface{}),
		Metadata:      make(map[string]interface{}),
	}
	// Execute pre-hooks (if hook manager is available)
	if err := c.executePreHooks(operationName, ctx); err != nil {
		return nil, err
	}
	// Execute operation
	var roots []editor.EnvironmentRoot
	var resultErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				resultErr = fmt.Errorf("panic in %s: %v", operationName, r)
			}
		}()
		roots, resultErr = operation()
	}()
	// Update context with results
	ctx.Error = resultErr
	if resultErr == nil {
		ctx.Results["roots"] = roots
		ctx.Results["success"] = true
	}
	// Execute post-hooks or error-hooks (if hook manager is available)
	if hookErr := c.executeHooks(operationName, ctx, resultErr); hookErr != nil {
		return nil, hookErr
	}
	return roots, resultErr
}

// executeWithHooksAndReturnScanReport executes an operation with pre and post
// hooks that returns a scan report.
func (c *realCleaner) executeWithHooksAndReturnScanReport(
	operationName string,
	params map[string]interface{},
	operation func() (ScanReport, error),
) (ScanReport, error) {
	ctx := &hooks.HookContext{
		OperationName: operationName,
		Parameters:    params,
		Results:       make(map[string]interface{}),
		Metadata:      make(map[string]interface{}),
	}
	// Execute pre-hooks (if hook manager is available)
	if err := c.executePreHooks(operationName, ctx); err != nil {
		return ScanReport{}, err
	}
	// Execute operation
	var scanReport ScanReport
	var resultErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				resultErr = fmt.Errorf("panic in %s: %v", operationName, r)
			}
		}()
		scanReport, resultErr = operation()
	}()
	// Update context with results
	ctx.Error = resultErr
	if resultErr == nil {
		ctx.Results["report"] = scanReport
		ctx.Results["success"] = true
	}
	// Execute post-hooks or error-hooks (if hook manager is available)
	if hookErr := c.executeHooks(operationName, ctx, resultErr); hookErr != nil {
		return ScanReport{}, hookErr
	}
	return scanReport, resultErr
}

// executeWithHooksAndReturnRewrites executes an operation with pre and post
// hooks that returns telemetry rewrites.
func (c *realCleaner) executeWithHooksAndReturnRewrites(
	operationName string,
	params map[string]interface{},
	operation func() ([]telemetry.Rewrite, error),
) ([]telemetry.Rewrite, error) {
	ctx := &hooks.HookContext{
		OperationName: operationName,
		Parameters:    params,
		Results:       make(map[string]interface{}),
		Metadata:      make(map[string]interface{}),
	}
	// Execute pre-hooks (if hook manager is available)
	if err := c.executePreHooks(operationName, ctx); err != nil {
		return nil, err
	}
	// Execute operation
	var rewrites []telemetry.Rewrite
	var resultErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				resultErr = fmt.Errorf("panic in %s: %v", operationName, r)
			}
		}()
		rewrites, resultErr = operation()
	}()
	// Update context with results
	ctx.Error = resultErr
	if resultErr == nil {
		ctx.Results["rewrites"] = rewrites
		ctx.Results["success"] = true
	}
	// Execute post-hooks or error-hooks (if hook manager is available)
	if hookErr := c.executeHooks(operationName, ctx, resultErr); hookErr != nil {
		return nil, hookErr
	}
	return rewrites, resultErr
}

// executeWithHooksAndReturnStoreResults executes an operation with pre and
// post hooks that returns state database cleanup results.
func (c *realCleaner) executeWithHooksAndReturnStoreResults(
	operationName string,
	params map[string]interface{},
	operation func() ([]store.CleanResult, error),
) ([]store.CleanResult, error) {
	ctx := &hooks.HookContext{
		OperationName: operationName,
		Parameters:    params,
		Results:       make(map[string]interface{}),
		Metadata:      make(map[string]interface{}),
	}
	// Execute pre-hooks (if hook manager is available)
	if err := c.executePreHooks(operationName, ctx); err != nil {
		return nil, err
	}
	// Execute operation
	var results []store.CleanResult
	var resultErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				resultErr = fmt.Errorf("panic in %s: %v", operationName, r)
			}
		}()
		results, resultErr = operation()
	}()
	// Update context with results
	ctx.Error = resultErr
	if resultErr == nil {
		ctx.Results["storeResults"] = results
		ctx.Results["success"] = true
	}
	// Execute post-hooks or error-hooks (if hook manager is available)
	if hookErr := c.executeHooks(operationName, ctx, resultErr); hookErr != nil {
		return nil, hookErr
	}
	return results, resultErr
}

// executeHooks executes post-hooks or error-hooks based on the operation result.
func (c *realCleaner) executeHooks(operationName string, ctx *hooks.HookContext, resultErr error) error {
	if c.hookManager == nil {
		return nil
	}

	if resultErr != nil {
		return c.hookManager.ExecuteErrorHooks(operationName, ctx)
	}
	return c.hookManager.ExecutePostHooks(operationName, ctx)
}

// executePreHooks executes pre-hooks if hook manager is available.
func (c *realCleaner) executePreHooks(operationName string, ctx *hooks.HookContext) error {
	if c.hookManager == nil {
		return nil
	}
	return c.hookManager.ExecutePreHooks(operationName, ctx)
}
