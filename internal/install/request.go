package install

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jask/storefront/internal/catalog"
)

const (
	ActionView     = "android.intent.action.VIEW"
	PackageMIME    = "application/vnd.android.package-archive"
	defaultFlagSet = FlagActivityNewTask | FlagGrantReadURIPermission
)

// Flags mirror the Android intent flag bits the install handler expects.
type Flags uint32

const (
	FlagGrantReadURIPermission Flags = 0x00000001
	FlagActivityNewTask        Flags = 0x10000000
)

func (f Flags) Has(flag Flags) bool { return f&flag == flag }

// Hex formats the flag set the way `am start -f` takes it.
func (f Flags) Hex() string { return fmt.Sprintf("0x%08x", uint32(f)) }

var (
	ErrMissingPackageURL = errors.New("install: app has no package url")
	ErrInvalidPackageURL = errors.New("install: package url is not a valid resource reference")
)

// Request asks the host to open a package resource with its install handler.
type Request struct {
	ID       string
	AppID    int
	AppName  string
	Action   string
	Data     string
	MIMEType string
	Flags    Flags
}

// NewRequest validates app's package url and builds the install request for
// it. The request ID is left for the dispatcher to fill.
func NewRequest(app catalog.App) (Request, error) {
	raw := strings.TrimSpace(app.APKURL)
	if raw == "" {
		return Request{}, ErrMissingPackageURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrInvalidPackageURL, err)
	}
	if u.Scheme == "" || (u.Host == "" && u.Opaque == "" && u.Path == "") {
		return Request{}, fmt.Errorf("%w: %q", ErrInvalidPackageURL, raw)
	}
	return Request{
		AppID:    app.ID,
		AppName:  app.Name,
		Action:   ActionView,
		Data:     raw,
		MIMEType: PackageMIME,
		Flags:    defaultFlagSet,
	}, nil
}
