package shared

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/joe/treewalk/pkg/filesystem"
)

// Exported constants.
const (
	// DefaultPadding is the default padding for UI elements
	DefaultPadding = 2

	// TickIntervalMs is the interval for tick messages in milliseconds
	TickIntervalMs = 100

	// KeyCtrlC is the key binding for cancellation
	KeyCtrlC = "ctrl+c"

	StateWalking   = "walking"
	StatePaused    = "paused"
	StateComplete  = "complete"
	StateCancelled = "cancelled"
	StateError     = "error"
)

func AccentColor() lipgloss.Color { return lipgloss.Color(accentColorCode) }

// BoxStyle returns the style for boxes with padding
func BoxStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(AccentColor()).
		Padding(0, DefaultPadding)
}

func DimColor() lipgloss.Color { return lipgloss.Color(dimColorCode) }

// DimStyle returns the style for dimmed text
func DimStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(DimColor())
}

func ErrorColor() lipgloss.Color { return lipgloss.Color(errorColorCode) }

// ErrorStyle returns the style for error messages
func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(ErrorColor()).
		Bold(true)
}

// FileItemErrorStyle returns the style for entries that failed
func FileItemErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(ErrorColor())
}

func HighlightColor() lipgloss.Color { return lipgloss.Color(highlightColorCode) }

// KindStyle returns the style for an entry of the given kind.
func KindStyle(kind filesystem.EntryKind) lipgloss.Style {
	style := lipgloss.NewStyle()

	switch kind {
	case filesystem.KindDirectory:
		return style.Foreground(AccentColor()).Bold(true)
	case filesystem.KindSymbolicLink:
		return style.Foreground(HighlightColor())
	case filesystem.KindRegularFile:
		return style.Foreground(NormalColor())
	case filesystem.KindBlockDevice, filesystem.KindCharacterDevice:
		return style.Foreground(WarningColor())
	case filesystem.KindNamedPipe, filesystem.KindSocket:
		return style.Foreground(PrimaryColor())
	default:
		return style.Foreground(DimColor())
	}
}

// LabelStyle returns the style for labels
func LabelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(HighlightColor()).
		Bold(true)
}

func NormalColor() lipgloss.Color { return lipgloss.Color(normalColorCode) }

// PrimaryColor returns the primary color for the UI
func PrimaryColor() lipgloss.Color { return lipgloss.Color(primaryColorCode) }

// RenderBox renders content in a box with consistent styling
func RenderBox(content string) string {
	return BoxStyle().Render(content)
}

// RenderDim renders dimmed text with consistent styling
func RenderDim(text string) string {
	return DimStyle().Render(text)
}

// RenderError renders an error message with consistent styling
func RenderError(text string) string {
	return ErrorStyle().Render(text)
}

// RenderLabel renders a label with consistent styling
func RenderLabel(text string) string {
	return LabelStyle().Render(text)
}

// RenderSuccess renders a success message with consistent styling
func RenderSuccess(text string) string {
	return SuccessStyle().Render(text)
}

// RenderTitle renders a title with consistent styling
func RenderTitle(text string) string {
	return TitleStyle().Render(text)
}

// RenderWarning renders a warning message with consistent styling
func RenderWarning(text string) string {
	return WarningStyle().Render(text)
}

func SuccessColor() lipgloss.Color { return lipgloss.Color(successColorCode) }

// SuccessStyle returns the style for success messages
func SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(SuccessColor()).
		Bold(true)
}

// TitleStyle returns the style for titles
func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor()).
		MarginBottom(1)
}

func WarningColor() lipgloss.Color { return lipgloss.Color(warningColorCode) }

// WarningStyle returns the style for warning messages
func WarningStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(WarningColor()).
		Bold(true)
}

// ErrorSymbol returns the marker shown before a failed entry.
func ErrorSymbol() string {
	return ErrorStyle().Render("✗")
}

// unexported constants.
const (
	accentColorCode    = "62"  // Blue
	dimColorCode       = "240" // Dark gray
	errorColorCode     = "196" // Red
	highlightColorCode = "86"  // Cyan
	normalColorCode    = "252" // Light gray
	primaryColorCode   = "205" // Pink/purple
	successColorCode   = "42"  // Green
	warningColorCode   = "226"
)
