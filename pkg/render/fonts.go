// fonts.go — Per-role font resolution with embedded fallback.
//
// Each text role resolves to the first candidate font file that loads on the
// current platform. Missing or unparsable candidates are skipped silently;
// the embedded Go fonts (bold for the name role, regular otherwise) are the
// last resort, so only the total absence of any usable face is fatal.
package render

import (
	"os"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/xob0t/GoSignature/pkg/config"
	"github.com/xob0t/GoSignature/pkg/signature"
)

const fontDPI = 72

// FontSet holds one resolved face per text role for a single render.
type FontSet struct {
	faces map[string]font.Face
}

// Face returns the resolved face for a role.
func (fs *FontSet) Face(role string) font.Face { return fs.faces[role] }

// ResolveFonts builds the role → face mapping for the current platform.
func ResolveFonts(cfg *config.Config) (*FontSet, error) {
	platform := platformKey()
	roles := []string{config.RoleName, config.RoleDetails, config.RoleConfidentiality}

	faces := make(map[string]font.Face, len(roles))
	for _, role := range roles {
		face, err := resolveFace(cfg, platform, role)
		if err != nil {
			return nil, err
		}
		faces[role] = face
	}

	return &FontSet{faces: faces}, nil
}

// resolveFace tries each candidate path for a role in order, then the
// embedded fallback.
func resolveFace(cfg *config.Config, platform, role string) (font.Face, error) {
	size := cfg.FontSize(role)

	for _, path := range cfg.FontCandidates(platform, role) {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		parsed, err := opentype.Parse(data)
		if err != nil {
			continue
		}
		face, err := newFace(parsed, size)
		if err != nil {
			continue
		}
		return face, nil
	}

	fallback := goregular.TTF
	if role == config.RoleName {
		fallback = gobold.TTF
	}
	parsed, err := opentype.Parse(fallback)
	if err != nil {
		return nil, &signature.RenderError{Op: "font resolution", Err: errors.Wrapf(err, "parse embedded font for role %s", role)}
	}
	face, err := newFace(parsed, size)
	if err != nil {
		return nil, &signature.RenderError{Op: "font resolution", Err: errors.Wrapf(err, "create embedded face for role %s", role)}
	}
	return face, nil
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     fontDPI,
		Hinting: font.HintingFull,
	})
}

// platformKey maps runtime.GOOS onto the configuration's platform keys.
// Unrecognized systems use the linux candidate list.
func platformKey() string {
	switch runtime.GOOS {
	case "windows", "darwin":
		return runtime.GOOS
	default:
		return "linux"
	}
}
