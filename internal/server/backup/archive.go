// Package backup dumps the users and vault tables into age-encrypted JSON
// archives and restores them into an empty database.
//
// Archives only ever hold what the database holds: salts, wrapped keys and
// field ciphertext. No master password or secret key is involved.
package backup

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"filippo.io/age"
	"github.com/dmitrijs2005/onepass/internal/server/models"
)

// FormatVersion is written into every archive.
const FormatVersion = 1

const (
	archivePrefix = "onepass-"
	archiveSuffix = ".json.age"
	stampLayout   = "20060102T150405Z"
)

// Archive is the plaintext document inside a backup.
type Archive struct {
	Version   int           `json:"version"`
	CreatedAt time.Time     `json:"created_at"`
	Users     []UserRecord  `json:"users"`
	Entries   []EntryRecord `json:"entries"`
}

type UserRecord struct {
	ID         string    `json:"id"`
	UserName   string    `json:"username"`
	Salt       []byte    `json:"salt"`
	WrappedKey []byte    `json:"wrapped_key"`
	Iterations int       `json:"iterations"`
	CreatedAt  time.Time `json:"created_at"`
}

type EntryRecord struct {
	ID        int64     `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Title     []byte    `json:"title"`
	URL       []byte    `json:"url,omitempty"`
	Username  []byte    `json:"username,omitempty"`
	Password  []byte    `json:"password,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func userRecord(u *models.User) UserRecord {
	return UserRecord{
		ID:         u.ID,
		UserName:   u.UserName,
		Salt:       u.Salt,
		WrappedKey: u.WrappedKey,
		Iterations: u.Iterations,
		CreatedAt:  u.CreatedAt,
	}
}

func (r UserRecord) model() *models.User {
	return &models.User{
		ID:         r.ID,
		UserName:   r.UserName,
		Salt:       r.Salt,
		WrappedKey: r.WrappedKey,
		Iterations: r.Iterations,
		CreatedAt:  r.CreatedAt,
	}
}

func entryRecord(e *models.VaultEntry) EntryRecord {
	return EntryRecord{
		ID:        e.ID,
		OwnerID:   e.OwnerID,
		Title:     e.Title,
		URL:       e.URL,
		Username:  e.Username,
		Password:  e.Password,
		CreatedAt: e.CreatedAt,
	}
}

func (r EntryRecord) model() *models.VaultEntry {
	return &models.VaultEntry{
		OwnerID:   r.OwnerID,
		Title:     r.Title,
		URL:       r.URL,
		Username:  r.Username,
		Password:  r.Password,
		CreatedAt: r.CreatedAt,
	}
}

// ArchiveName is the object name for a backup taken at t.
func ArchiveName(t time.Time) string {
	return archivePrefix + t.UTC().Format(stampLayout) + archiveSuffix
}

func isArchiveName(name string) bool {
	stamp, ok := strings.CutPrefix(name, archivePrefix)
	if !ok {
		return false
	}
	stamp, ok = strings.CutSuffix(stamp, archiveSuffix)
	if !ok {
		return false
	}
	_, err := time.Parse(stampLayout, stamp)
	return err == nil
}

// encrypt seals plaintext to recipient.
func encrypt(plaintext []byte, recipient age.Recipient) ([]byte, error) {
	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, recipient)
	if err != nil {
		return nil, fmt.Errorf("creating encrypted writer: %w", err)
	}
	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("encrypting archive: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing encryption: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateKey creates a new X25519 key pair for backups.
func GenerateKey() (*age.X25519Identity, error) {
	id, err := age.GenerateX25519Identity()
	if err != nil {
		return nil, fmt.Errorf("generating key pair: %w", err)
	}
	return id, nil
}

// ParseRecipient parses an "age1..." public key.
func ParseRecipient(s string) (age.Recipient, error) {
	r, err := age.ParseX25519Recipient(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("parsing backup recipient: %w", err)
	}
	return r, nil
}

// ReadIdentities parses age identities, one per line, comments allowed.
func ReadIdentities(r io.Reader) ([]age.Identity, error) {
	ids, err := age.ParseIdentities(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("parsing backup identity: %w", err)
	}
	return ids, nil
}

// LoadIdentities reads an age identity file.
func LoadIdentities(path string) ([]age.Identity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening identity file: %w", err)
	}
	defer f.Close()
	return ReadIdentities(f)
}
