package resolve

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/drawables/pkg/errors"
	"github.com/arthur-debert/drawables/pkg/filesystem"
	"github.com/arthur-debert/drawables/pkg/logging"
	"github.com/arthur-debert/drawables/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultTypes are the archive extensions tried, in order, for a
// coordinate without an explicit type
var DefaultTypes = []string{"zip", "jar", "aar", "apklib"}

// DefaultTimeout bounds one remote request
const DefaultTimeout = 60 * time.Second

// Resolver maps a coordinate to a location
type Resolver interface {
	Resolve(ctx context.Context, c types.Coordinate) (types.Location, error)
}

// Config configures a Repository
type Config struct {
	// Local is the local repository root
	Local string
	// Remotes are repository base URLs, tried in order
	Remotes []string
	// Offline skips remotes
	Offline bool
	// Workspace maps coordinate keys (group:artifact:version) to directories
	Workspace map[string]string
	// Client is the HTTP client for remotes (optional)
	Client *http.Client
	// FileSystem is the filesystem to use (optional, defaults to OS filesystem)
	FileSystem types.FS
}

// Repository is the production Resolver
type Repository struct {
	cfg    Config
	fs     types.FS
	client *http.Client
	logger zerolog.Logger
}

// NewRepository creates a Repository
func NewRepository(cfg Config) *Repository {
	fs := cfg.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &Repository{
		cfg:    cfg,
		fs:     fs,
		client: client,
		logger: logging.GetLogger("resolve"),
	}
}

// ArtifactPath is the slash-separated repository-relative path of c
// packaged as typ
func ArtifactPath(c types.Coordinate, typ string) string {
	return path.Join(
		strings.ReplaceAll(c.Group, ".", "/"),
		c.Artifact,
		c.Version,
		fmt.Sprintf("%s-%s.%s", c.Artifact, c.Version, typ),
	)
}

func typesFor(c types.Coordinate) []string {
	if c.Type != "" {
		return []string{c.Type}
	}
	return DefaultTypes
}

// Resolve looks c up in the workspace, the local repository and the remotes
func (r *Repository) Resolve(ctx context.Context, c types.Coordinate) (types.Location, error) {
	if err := c.Validate(); err != nil {
		return types.Location{}, errors.Wrap(err, errors.ErrInvalidInput, "invalid coordinate").
			WithDetail("coordinate", c.String())
	}
	log := r.logger.With().Str("coordinate", c.String()).Logger()

	if dir, ok := r.cfg.Workspace[c.Key()]; ok {
		if !filesystem.IsDir(r.fs, dir) {
			return types.Location{}, missing(c, fmt.Sprintf("workspace directory %s does not exist", dir))
		}
		log.Debug().Str("dir", dir).Msg("Resolved from workspace")
		return types.Location{Path: dir, IsDir: true}, nil
	}

	if r.cfg.Local != "" {
		for _, typ := range typesFor(c) {
			local := filepath.Join(r.cfg.Local, filepath.FromSlash(ArtifactPath(c, typ)))
			if info, err := r.fs.Stat(local); err == nil && info.Mode().IsRegular() {
				log.Debug().Str("path", local).Msg("Resolved from local repository")
				return types.Location{Path: local}, nil
			}
		}
	}

	if r.cfg.Offline {
		return types.Location{}, missing(c, "not in the local repository (offline)")
	}

	for _, remote := range r.cfg.Remotes {
		for _, typ := range typesFor(c) {
			loc, found, err := r.download(ctx, c, remote, typ)
			if err != nil {
				return types.Location{}, err
			}
			if found {
				log.Info().Str("remote", remote).Str("path", loc.Path).Msg("Downloaded artifact")
				return loc, nil
			}
		}
	}

	return types.Location{}, missing(c, fmt.Sprintf("not found in the local repository or %d remote(s)", len(r.cfg.Remotes)))
}

// download fetches one candidate; a 404 is reported as not found
func (r *Repository) download(ctx context.Context, c types.Coordinate, remote, typ string) (types.Location, bool, error) {
	rel := ArtifactPath(c, typ)
	url := strings.TrimSuffix(remote, "/") + "/" + rel

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return types.Location{}, false, failed(err, c, url)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return types.Location{}, false, errors.Wrapf(ctx.Err(), errors.ErrCanceled, "resolving %s canceled", c).
				WithDetail("coordinate", c.String())
		}
		return types.Location{}, false, failed(err, c, url)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		r.logger.Debug().Str("url", url).Msg("Not on remote")
		return types.Location{}, false, nil
	case resp.StatusCode != http.StatusOK:
		return types.Location{}, false, failed(fmt.Errorf("unexpected status %s", resp.Status), c, url)
	}

	if r.cfg.Local == "" {
		return types.Location{}, false, failed(fmt.Errorf("no local repository to store the download"), c, url)
	}
	dst := filepath.Join(r.cfg.Local, filepath.FromSlash(rel))
	err = filesystem.WriteAtomic(r.fs, dst, func(w io.Writer) error {
		_, err := io.Copy(w, resp.Body)
		return err
	})
	if err != nil {
		return types.Location{}, false, failed(err, c, url)
	}
	return types.Location{Path: dst}, true, nil
}

func missing(c types.Coordinate, why string) *errors.DrawablesError {
	return errors.Newf(errors.ErrArtifactMissing, "artifact %s is missing: %s", c, why).
		WithDetail("coordinate", c.String())
}

func failed(err error, c types.Coordinate, url string) *errors.DrawablesError {
	return errors.Wrapf(err, errors.ErrResolutionFailed, "failed to resolve artifact %s from %s", c, url).
		WithDetail("coordinate", c.String()).
		WithDetail("url", url)
}

// Classify returns err as a resolution error for c. Resolution and
// cancellation errors keep their code; anything else becomes
// RESOLUTION_UNKNOWN. The coordinate is always recorded.
func Classify(err error, c types.Coordinate) *errors.DrawablesError {
	if err == nil {
		return nil
	}
	if coded, ok := errors.As(err); ok && (errors.IsResolutionError(coded) || coded.Code == errors.ErrCanceled) {
		if _, has := coded.Details["coordinate"]; !has {
			coded.WithDetail("coordinate", c.String())
		}
		return coded
	}
	return errors.Wrapf(err, errors.ErrResolutionUnknown, "unexpected failure resolving artifact %s", c).
		WithDetail("coordinate", c.String())
}
