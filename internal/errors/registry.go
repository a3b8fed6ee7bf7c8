package errors

import "sort"

// Error codes.
const (
	CodeUnsupportedNodeKind = "R001"
	CodeHostAdapterFailure  = "R002"
	CodeDuplicateKey        = "R003"
	CodeMissingKey          = "R004"
	CodeNoContainerRoot     = "R005"
	CodeInvalidNode         = "R006"

	CodeConfigInvalid  = "E120"
	CodeConfigNotFound = "E141"

	CodeSceneParse   = "S001"
	CodeSceneInvalid = "S002"

	CodeSnapshotStore = "S101"

	CodeCommandFailed = "C001"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Render Errors (R001-R099)
	// ============================================

	CodeUnsupportedNodeKind: {
		Category:   CategoryRender,
		Message:    "Unsupported node kind",
		Suggestion: "Render the component to an element tree before passing it to the renderer",
	},
	CodeHostAdapterFailure: {
		Category: CategoryHost,
		Message:  "Host adapter operation failed",
	},
	CodeDuplicateKey: {
		Category:   CategoryRender,
		Message:    "Duplicate key in child list",
		Suggestion: "Give every sibling in a keyed list a distinct key",
	},
	CodeMissingKey: {
		Category:   CategoryRender,
		Message:    "Missing key in child list",
		Suggestion: "Key every child of the list, or none of them",
	},
	CodeNoContainerRoot: {
		Category: CategoryRender,
		Message:  "Container has no host root",
	},
	CodeInvalidNode: {
		Category: CategoryRender,
		Message:  "Invalid virtual node",
	},

	// ============================================
	// Config Errors (E120-E149)
	// ============================================

	CodeConfigInvalid: {
		Category:   CategoryConfig,
		Message:    "Invalid configuration",
		Suggestion: "Check that vnode.json is valid JSON and uses known values",
	},
	CodeConfigNotFound: {
		Category:   CategoryConfig,
		Message:    "Configuration file not found",
		Suggestion: "Create vnode.json or run without --config to use defaults",
	},

	// ============================================
	// Scene Errors (S001-S099)
	// ============================================

	CodeSceneParse: {
		Category:   CategoryScene,
		Message:    "Failed to parse scene file",
		Suggestion: "Scene files are TOML (.toml) or JSON (.json)",
	},
	CodeSceneInvalid: {
		Category: CategoryScene,
		Message:  "Invalid scene",
	},

	// ============================================
	// Snapshot Errors (S101-S199)
	// ============================================

	CodeSnapshotStore: {
		Category: CategorySnapshot,
		Message:  "Snapshot store failed",
	},

	// ============================================
	// CLI Errors (C001-C099)
	// ============================================

	CodeCommandFailed: {
		Category:   CategoryCLI,
		Message:    "Command failed",
		Suggestion: "Run the command with --help for usage",
	},
}

// GetAllCodes returns all registered codes in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
