// Package render implements the signature rendering pipeline: font
// resolution, layout computation, and compositing onto a transparent RGBA
// canvas encoded as PNG. Given identical data, configuration and logo bytes
// the output is byte-for-byte reproducible.
package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/xob0t/GoSignature/pkg/config"
	"github.com/xob0t/GoSignature/pkg/signature"
)

// Generate is the single rendering entry point: it resolves fonts, loads the
// logo if one applies, computes the layout, composites the canvas, and
// returns the encoded PNG bytes. Any failure yields a *signature.RenderError
// and no partial output.
func Generate(data *signature.SignatureData, cfg *config.Config, log *zap.Logger) ([]byte, error) {
	if log == nil {
		log = zap.NewNop()
	}

	fonts, err := ResolveFonts(cfg)
	if err != nil {
		return nil, err
	}

	logoPath := data.LogoPath()
	if logoPath == "" {
		logoPath = FindLogo(cfg.LogoSearchPaths)
	}

	var logo image.Image
	var logoSize *image.Point
	if logoPath != "" {
		logo, err = LoadLogo(logoPath, cfg.LogoHeight)
		if err != nil {
			return nil, err
		}
		bounds := logo.Bounds()
		logoSize = &image.Point{X: bounds.Dx(), Y: bounds.Dy()}
		log.Debug("logo loaded",
			zap.String("path", logoPath),
			zap.Int("width", bounds.Dx()),
			zap.Int("height", bounds.Dy()))
	}

	layout := ComputeLayout(data, cfg, fonts, logoSize)
	log.Debug("layout computed",
		zap.Int("width", layout.Width),
		zap.Int("height", layout.Height),
		zap.Int("lines", len(layout.Lines)))

	canvas := Compose(cfg, fonts, layout, logo)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, &signature.RenderError{Op: "png encode", Err: err}
	}
	return buf.Bytes(), nil
}

// Compose paints the computed layout onto a fresh, fully transparent NRGBA
// canvas: logo first, then each text line with its halo, the separator rule,
// and the confidentiality notice.
func Compose(cfg *config.Config, fonts *FontSet, layout *Layout, logo image.Image) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, layout.Width, layout.Height))

	if layout.Logo != nil && logo != nil {
		box := layout.Logo
		// The logo was already resized to the box during loading; resizing for
		// the layout is idempotent because both use LogoBoxSize.
		rect := image.Rect(box.X, box.Y, box.X+box.Width, box.Y+box.Height)
		draw.Draw(canvas, rect, logo, logo.Bounds().Min, draw.Over)
	}

	outlineColor := cfg.Color("outline")

	for _, line := range layout.Lines {
		face := fonts.Face(line.Role)
		width := cfg.Outline.TextWidth
		if line.Role == config.RoleName {
			width = cfg.Outline.NameWidth
		}
		baseline := line.Y + face.Metrics().Ascent.Ceil()
		DrawHaloText(canvas, line.Text, line.X, baseline, face, cfg.Color(line.Role), outlineColor, width)
	}

	draw.Draw(canvas, layout.Separator, &image.Uniform{cfg.Color("separator")}, image.Point{}, draw.Over)

	conf := layout.Confidentiality
	confFace := fonts.Face(conf.Role)
	confBaseline := conf.Y + confFace.Metrics().Ascent.Ceil()
	DrawHaloText(canvas, conf.Text, conf.X, confBaseline, confFace, cfg.Color(conf.Role), outlineColor, cfg.Outline.TextWidth)

	return canvas
}

// DrawHaloText renders text with a contrasting halo so it stays legible over
// arbitrary backgrounds: the outline color is painted at every pixel offset
// within width around (x, y) except the origin, then the fill color on top
// at the true position. x, y anchor the text baseline.
func DrawHaloText(dst draw.Image, text string, x, y int, face font.Face, fill, outline color.Color, width int) {
	for dx := -width; dx <= width; dx++ {
		for dy := -width; dy <= width; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawString(dst, text, x+dx, y+dy, face, outline)
		}
	}
	drawString(dst, text, x, y, face, fill)
}

// drawString paints one string at a baseline position.
func drawString(dst draw.Image, text string, x, y int, face font.Face, col color.Color) {
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(text)
}
