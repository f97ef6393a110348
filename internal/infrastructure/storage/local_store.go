package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/rafabene/blog-backend/internal/domain/ports"
)

var errInvalidIdentifier = errors.New("invalid blob identifier")

// LocalStore implementa ports.BlobStore gravando arquivos em disco.
// Os arquivos ficam em <root>/<folder>/<nome>-<uuid>.<formato>.
type LocalStore struct {
	root      string
	publicURL string
	logger    ports.Logger
}

// NewLocalStore cria o diretório raiz se necessário
func NewLocalStore(root, publicURL string, logger ports.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}

	return &LocalStore{
		root:      root,
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    logger,
	}, nil
}

// Root retorna o diretório servido em /uploads
func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) Upload(ctx context.Context, file ports.FileUpload, folder string) (*ports.UploadedBlob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if file.Content == nil {
		return nil, errors.New("empty upload")
	}

	format := formatOf(file)
	identifier := path.Join(folder, stemOf(file.Filename)+"-"+uuid.NewString())

	target, err := s.pathFor(identifier)
	if err != nil {
		return nil, err
	}
	if format != "" {
		target += "." + format
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob: %w", err)
	}

	written, err := io.Copy(out, file.Content)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(target)
		return nil, fmt.Errorf("failed to write blob: %w", err)
	}

	s.logger.Debug("blob stored", "identifier", identifier, "format", format, "bytes", written)

	return &ports.UploadedBlob{Identifier: identifier, Format: format}, nil
}

// Delete remove o arquivo com qualquer extensão; arquivo ausente não é erro
func (s *LocalStore) Delete(ctx context.Context, identifier string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	base, err := s.pathFor(identifier)
	if err != nil {
		return err
	}

	matches, err := filepath.Glob(globEscape(base) + ".*")
	if err != nil {
		return err
	}
	matches = append(matches, base)

	for _, m := range matches {
		if err := os.Remove(m); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to delete blob: %w", err)
		}
	}
	return nil
}

func (s *LocalStore) URL(blobID string) string {
	if blobID == "" {
		return ""
	}
	return s.publicURL + "/" + blobID
}

// pathFor resolve o identificador dentro de root, recusando caminhos que escapam dele
func (s *LocalStore) pathFor(identifier string) (string, error) {
	clean := path.Clean("/" + identifier)
	if identifier == "" || clean == "/" || clean != "/"+identifier {
		return "", errInvalidIdentifier
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

func formatOf(file ports.FileUpload) string {
	if ext := strings.TrimPrefix(filepath.Ext(file.Filename), "."); ext != "" {
		return strings.ToLower(ext)
	}
	if exts, _ := mime.ExtensionsByType(file.ContentType); len(exts) > 0 {
		return strings.TrimPrefix(exts[0], ".")
	}
	return ""
}

// stemOf reduz o nome original a [a-z0-9_-], como parte legível do identificador
func stemOf(filename string) string {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	var b strings.Builder
	for _, r := range strings.ToLower(stem) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '.':
			b.WriteRune('-')
		}
		if b.Len() >= 40 {
			break
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}

func globEscape(p string) string {
	r := strings.NewReplacer(`*`, `\*`, `?`, `\?`, `[`, `\[`)
	return r.Replace(p)
}
