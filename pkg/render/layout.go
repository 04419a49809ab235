// layout.go — Deterministic geometry for one signature render.
//
// ComputeLayout turns validated signature data plus configuration into the
// pixel placement of every visual element. It measures real font metrics, so
// long names widen the canvas instead of clipping, and lines whose content is
// empty after trimming are omitted entirely rather than reserving blank space.
package render

import (
	"image"
	"strings"

	"golang.org/x/image/font"

	"github.com/xob0t/GoSignature/pkg/config"
	"github.com/xob0t/GoSignature/pkg/signature"
)

// Line is one placed text line. X, Y anchor its top-left corner.
type Line struct {
	Text string
	Role string
	X, Y int
}

// LogoBox is the placed, resized logo region.
type LogoBox struct {
	X, Y          int
	Width, Height int
}

// Layout is the computed geometry for one render: canvas dimensions and the
// anchor of every element. It is derived fresh per render and discarded
// after compositing.
type Layout struct {
	Width  int
	Height int

	Logo            *LogoBox // nil when no logo is rendered
	Lines           []Line
	Separator       image.Rectangle
	Confidentiality Line
}

// LogoBoxSize scales a source image to targetHeight preserving its aspect
// ratio exactly: width = round(origW * targetHeight / origH), minimum 1 px.
func LogoBoxSize(origW, origH, targetHeight int) (int, int) {
	if origH <= 0 {
		return 1, targetHeight
	}
	w := (origW*targetHeight + origH/2) / origH
	if w < 1 {
		w = 1
	}
	return w, targetHeight
}

// ComputeLayout derives the full layout from data, configuration and the
// original logo dimensions (nil when no logo takes part). The resolved fonts
// supply the metrics for width measurement.
func ComputeLayout(data *signature.SignatureData, cfg *config.Config, fonts *FontSet, logoSize *image.Point) *Layout {
	textX := cfg.Margin
	var logo *LogoBox
	if logoSize != nil {
		w, h := LogoBoxSize(logoSize.X, logoSize.Y, cfg.LogoHeight)
		logo = &LogoBox{X: cfg.Margin, Y: cfg.Margin, Width: w, Height: h}
		textX = cfg.Margin + w + cfg.LogoMarginRight
	}

	lines := placeLines(data, cfg, textX)

	maxTextWidth := 0
	for _, line := range lines {
		if w := measure(fonts.Face(line.Role), line.Text); w > maxTextWidth {
			maxTextWidth = w
		}
	}
	if w := measure(fonts.Face(config.RoleConfidentiality), cfg.ConfidentialityText); w > maxTextWidth {
		maxTextWidth = w
	}

	textBlockBottom := cfg.Margin + len(lines)*cfg.LineHeight

	sepY := textBlockBottom + cfg.Separator.GapTop
	separator := image.Rect(textX, sepY, textX+maxTextWidth, sepY+cfg.Separator.Thickness)

	confY := sepY + cfg.Separator.Thickness + cfg.Separator.GapBottom
	confidentiality := Line{
		Text: cfg.ConfidentialityText,
		Role: config.RoleConfidentiality,
		X:    textX,
		Y:    confY,
	}

	contentHeight := confY + cfg.ConfidentialityLineHeight - cfg.Margin
	logoHeight := 0
	if logo != nil {
		logoHeight = logo.Height
	}

	return &Layout{
		Width:           textX + maxTextWidth + cfg.Margin,
		Height:          cfg.Margin*2 + max(logoHeight, contentHeight),
		Logo:            logo,
		Lines:           lines,
		Separator:       separator,
		Confidentiality: confidentiality,
	}
}

// placeLines builds the ordered, stacked text lines. Optional lines with
// empty content after trimming are dropped and reserve no vertical space.
func placeLines(data *signature.SignatureData, cfg *config.Config, textX int) []Line {
	type entry struct {
		text string
		role string
	}

	candidates := []entry{
		{data.Name(), config.RoleName},
		{data.Position(), config.RoleDetails},
		{data.Address(), config.RoleDetails},
		{phoneLine("Tel: ", data.Phone()), config.RoleDetails},
		{phoneLine("Mob: ", data.Mobile()), config.RoleDetails},
		{data.Email(), config.RoleDetails},
		{data.Website(), config.RoleDetails},
	}

	var lines []Line
	y := cfg.Margin
	for _, c := range candidates {
		if strings.TrimSpace(c.text) == "" {
			continue
		}
		lines = append(lines, Line{Text: c.text, Role: c.role, X: textX, Y: y})
		y += cfg.LineHeight
	}
	return lines
}

func phoneLine(prefix, number string) string {
	if number == "" {
		return ""
	}
	return prefix + number
}

// measure returns the pixel advance of text under face, rounded up.
func measure(face font.Face, text string) int {
	return font.MeasureString(face, text).Ceil()
}
