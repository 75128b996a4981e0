package keys

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	smpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/mr-tron/base58"
	"google.golang.org/api/option"
)

const keypairSize = 64

// Source kinds accepted by LoadPayer.
const (
	SourceFile          = "file"
	SourceSecretManager = "secretmanager"
)

// ErrMasterKeyMissing is returned when an encrypted key is configured but the
// master key environment variable is empty.
var ErrMasterKeyMissing = errors.New("master key not set")

// PayerConfig describes where the payer keypair lives.
type PayerConfig struct {
	Source string
	// Path is a file path for SourceFile and a secret version resource
	// name (projects/*/secrets/*/versions/*) for SourceSecretManager.
	Path            string
	Encrypted       bool
	MasterKeyEnv    string
	CredentialsFile string
}

// ParseKeypair accepts either the solana-keygen JSON format (an array of 64
// byte values) or a base58-encoded 64-byte secret key.
func ParseKeypair(data []byte) (types.Account, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return types.Account{}, errors.New("empty keypair")
	}

	var raw []byte
	if trimmed[0] == '[' {
		var ints []int
		if err := json.Unmarshal(trimmed, &ints); err != nil {
			return types.Account{}, fmt.Errorf("decode keypair json: %w", err)
		}
		raw = make([]byte, len(ints))
		for i, v := range ints {
			if v < 0 || v > 255 {
				return types.Account{}, fmt.Errorf("keypair byte %d out of range: %d", i, v)
			}
			raw[i] = byte(v)
		}
	} else {
		decoded, err := base58.Decode(string(trimmed))
		if err != nil {
			return types.Account{}, fmt.Errorf("decode keypair base58: %w", err)
		}
		raw = decoded
	}

	if len(raw) != keypairSize {
		return types.Account{}, fmt.Errorf("keypair must be %d bytes, got %d", keypairSize, len(raw))
	}
	acc, err := types.AccountFromBytes(raw)
	if err != nil {
		return types.Account{}, fmt.Errorf("invalid keypair: %w", err)
	}
	return acc, nil
}

// LoadPayer fetches, optionally decrypts, and parses the payer keypair.
func LoadPayer(ctx context.Context, cfg *PayerConfig) (types.Account, error) {
	if cfg == nil {
		return types.Account{}, errors.New("nil payer config")
	}

	var (
		data []byte
		err  error
	)
	switch cfg.Source {
	case SourceFile, "":
		data, err = os.ReadFile(cfg.Path)
		if err != nil {
			return types.Account{}, fmt.Errorf("read payer keypair: %w", err)
		}
	case SourceSecretManager:
		data, err = accessSecret(ctx, cfg.Path, cfg.CredentialsFile)
		if err != nil {
			return types.Account{}, err
		}
	default:
		return types.Account{}, fmt.Errorf("unknown payer source %q", cfg.Source)
	}

	if cfg.Encrypted {
		data, err = openSealed(data, cfg.MasterKeyEnv)
		if err != nil {
			return types.Account{}, err
		}
	}
	return ParseKeypair(data)
}

func openSealed(data []byte, masterKeyEnv string) ([]byte, error) {
	encoded := os.Getenv(masterKeyEnv)
	if encoded == "" {
		return nil, fmt.Errorf("%w: env=%s (hint: openssl rand -base64 32)", ErrMasterKeyMissing, masterKeyEnv)
	}
	masterKey, err := MasterKeyFromBase64(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid master key: %w", err)
	}
	c, err := NewMasterKeyCipher(masterKey)
	if err != nil {
		return nil, err
	}
	plaintext, err := c.Decrypt(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("decrypt payer keypair: %w", err)
	}
	return plaintext, nil
}

func accessSecret(ctx context.Context, name, credentialsFile string) ([]byte, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("secretmanager.NewClient: %w", err)
	}
	defer func() { _ = client.Close() }()

	res, err := client.AccessSecretVersion(ctx, &smpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return nil, fmt.Errorf("access secret %s: %w", name, err)
	}
	if res == nil || res.Payload == nil {
		return nil, fmt.Errorf("secret %s has no payload", name)
	}
	return res.Payload.Data, nil
}
