package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xob0t/GoSignature/pkg/config"
	"github.com/xob0t/GoSignature/pkg/signature"
)

// writeTestLogo encodes a solid opaque PNG of the given size to dir and
// returns its path.
func writeTestLogo(t *testing.T, dir string, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 10, G: 90, B: 200, A: 255})
		}
	}
	path := filepath.Join(dir, "logo.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestGenerate_EndToEnd(t *testing.T) {
	cfg := testConfig()
	data := testData(t, fullInput())

	pngBytes, err := Generate(data, cfg, nil)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(pngBytes))
	require.NoError(t, err)

	fonts, err := ResolveFonts(cfg)
	require.NoError(t, err)
	layout := ComputeLayout(data, cfg, fonts, nil)

	bounds := decoded.Bounds()
	assert.Equal(t, layout.Width, bounds.Dx())
	assert.Equal(t, layout.Height, bounds.Dy())
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := testConfig()
	data := testData(t, fullInput())

	first, err := Generate(data, cfg, nil)
	require.NoError(t, err)
	second, err := Generate(data, cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerate_BackgroundIsTransparent(t *testing.T) {
	cfg := testConfig()
	data := testData(t, fullInput())

	pngBytes, err := Generate(data, cfg, nil)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(pngBytes))
	require.NoError(t, err)

	// Nothing is drawn into the corners: alpha must be exactly zero there.
	bounds := decoded.Bounds()
	corners := []image.Point{
		{bounds.Min.X, bounds.Min.Y},
		{bounds.Max.X - 1, bounds.Min.Y},
		{bounds.Min.X, bounds.Max.Y - 1},
		{bounds.Max.X - 1, bounds.Max.Y - 1},
	}
	for _, pt := range corners {
		_, _, _, a := decoded.At(pt.X, pt.Y).RGBA()
		assert.Zero(t, a, "corner (%d,%d) should be fully transparent", pt.X, pt.Y)
	}
}

func TestGenerate_WithLogo(t *testing.T) {
	dir := t.TempDir()
	logoPath := writeTestLogo(t, dir, 200, 100)

	cfg := testConfig()
	in := fullInput()
	in.LogoPath = logoPath
	data := testData(t, in)

	pngBytes, err := Generate(data, cfg, nil)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(pngBytes))
	require.NoError(t, err)

	// The logo box is 140x70 (200:100 scaled to height 70) anchored at the
	// margin; its center pixel must carry the logo color.
	cx := cfg.Margin + 70
	cy := cfg.Margin + 35
	r, g, b, a := decoded.At(cx, cy).RGBA()
	assert.NotZero(t, a)
	assert.Equal(t, uint32(10<<8|10), r)
	assert.Equal(t, uint32(90<<8|90), g)
	assert.Equal(t, uint32(200<<8|200), b)
}

func TestGenerate_CorruptLogoFailsWithRenderError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.png")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a png"), 0o644))

	cfg := testConfig()
	in := fullInput()
	in.LogoPath = path
	data := testData(t, in)

	_, err := Generate(data, cfg, nil)
	var rErr *signature.RenderError
	require.ErrorAs(t, err, &rErr)
	assert.Equal(t, "logo decode", rErr.Op)
	assert.Error(t, rErr.Unwrap())
}

func TestGenerate_SearchPathsProbedWhenNoExplicitLogo(t *testing.T) {
	dir := t.TempDir()
	logoPath := writeTestLogo(t, dir, 100, 100)

	cfg := testConfig()
	cfg.LogoSearchPaths = []string{filepath.Join(dir, "missing.png"), logoPath}
	data := testData(t, fullInput())

	pngBytes, err := Generate(data, cfg, nil)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(pngBytes))
	require.NoError(t, err)

	// With the logo found, the canvas is wider by box + gap.
	fonts, err := ResolveFonts(cfg)
	require.NoError(t, err)
	plain := ComputeLayout(data, cfg, fonts, nil)
	assert.Equal(t, plain.Width+cfg.LogoHeight+cfg.LogoMarginRight, decoded.Bounds().Dx())
}

func TestLoadLogo_ResizePreservesAspectRatio(t *testing.T) {
	dir := t.TempDir()
	logoPath := writeTestLogo(t, dir, 300, 120)

	logo, err := LoadLogo(logoPath, 70)
	require.NoError(t, err)

	bounds := logo.Bounds()
	assert.Equal(t, 70, bounds.Dy())
	assert.Equal(t, 175, bounds.Dx()) // round(300*70/120)
}

func TestDrawHaloText_CoversNeighborsOfEveryGlyphPixel(t *testing.T) {
	cfg := testConfig()
	fonts, err := ResolveFonts(cfg)
	require.NoError(t, err)
	face := fonts.Face(config.RoleName)

	const outlineWidth = 2
	plain := image.NewNRGBA(image.Rect(0, 0, 300, 60))
	drawString(plain, "Halo", 20, 40, face, color.NRGBA{R: 51, G: 51, B: 51, A: 255})

	halo := image.NewNRGBA(image.Rect(0, 0, 300, 60))
	DrawHaloText(halo, "Halo", 20, 40, face,
		color.NRGBA{R: 51, G: 51, B: 51, A: 255},
		color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		outlineWidth)

	// The halo paints the same glyph mask at every offset within the outline
	// width, so each painted pixel of the plain rendering must have painted
	// coverage at all of its neighbors in the halo rendering.
	bounds := plain.Bounds()
	checked := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if plain.NRGBAAt(x, y).A == 0 {
				continue
			}
			checked++
			for dx := -outlineWidth; dx <= outlineWidth; dx++ {
				for dy := -outlineWidth; dy <= outlineWidth; dy++ {
					assert.NotZero(t, halo.NRGBAAt(x+dx, y+dy).A,
						"pixel (%d,%d) offset (%d,%d) not covered", x, y, dx, dy)
				}
			}
		}
	}
	assert.Greater(t, checked, 0, "expected the plain rendering to paint pixels")
}
