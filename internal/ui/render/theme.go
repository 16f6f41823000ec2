package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines panel colors.
type ColorTheme struct {
	Background    tcell.Color
	Foreground    tcell.Color
	HeaderBg      tcell.Color
	HeaderFg      tcell.Color
	FolderFg      tcell.Color
	ActiveFg      tcell.Color
	FileFg        tcell.Color
	OtherFileFg   tcell.Color
	PinnedFg      tcell.Color
	CountFg       tcell.Color
	SelectionBg   tcell.Color
	SelectionFg   tcell.Color
	UnfocusedBg   tcell.Color
	SeparatorFg   tcell.Color
	FooterBg      tcell.Color
	FooterFg      tcell.Color
	NoticeBg      tcell.Color
	NoticeFg      tcell.Color
	PlaceholderFg tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:    tcell.ColorDefault,
		Foreground:    tcell.ColorDefault,
		HeaderBg:      tcell.ColorDefault,
		HeaderFg:      tcell.ColorDefault,
		FolderFg:      tcell.Color33,
		ActiveFg:      tcell.Color214, // amber for the active folder and file
		FileFg:        tcell.ColorDefault,
		OtherFileFg:   tcell.ColorLightSlateGray,
		PinnedFg:      tcell.Color170,
		CountFg:       tcell.Color244,
		SelectionBg:   tcell.Color33,
		SelectionFg:   tcell.ColorWhite,
		UnfocusedBg:   tcell.Color238,
		SeparatorFg:   tcell.Color240,
		FooterBg:      tcell.ColorDefault,
		FooterFg:      tcell.ColorDefault,
		NoticeBg:      tcell.ColorGreen,
		NoticeFg:      tcell.ColorBlack,
		PlaceholderFg: tcell.Color244,
	}
}
