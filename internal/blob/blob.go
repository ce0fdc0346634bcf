// Package blob guarda as fotos de perfil. O colaborador real é um object
// storage externo; aqui a interface e uma implementação em disco que serve
// os arquivos pelo próprio serviço.
package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store recebe uma imagem e devolve a URL pública dela.
type Store interface {
	Put(ctx context.Context, ownerID, filename string, r io.Reader) (url string, err error)
}

// FSStore grava em disco sob {dir}/{ownerID}/ e monta URLs em {baseURL}/uploads/.
type FSStore struct {
	dir     string
	baseURL string
}

func NewFSStore(dir, baseURL string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FSStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Dir é o diretório raiz dos uploads, exposto para o file server da API.
func (s *FSStore) Dir() string { return s.dir }

func (s *FSStore) Put(ctx context.Context, ownerID, filename string, r io.Reader) (string, error) {
	// prefixo de timestamp evita colisão e dispensa lookup prévio
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitize(filename))
	rel := filepath.Join(ownerID, name)

	if err := os.MkdirAll(filepath.Join(s.dir, ownerID), 0o755); err != nil {
		return "", fmt.Errorf("create owner dir: %w", err)
	}
	f, err := os.Create(filepath.Join(s.dir, rel))
	if err != nil {
		return "", fmt.Errorf("create blob: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return s.baseURL + "/uploads/" + filepath.ToSlash(rel), nil
}

// sanitize mantém só um nome base inofensivo para o arquivo.
func sanitize(name string) string {
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		}
		return '_'
	}, name)
	if name == "" || name == "." {
		name = "upload"
	}
	return name
}
