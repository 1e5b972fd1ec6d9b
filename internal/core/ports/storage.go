package ports

import "context"

// Storage is the durable key-value store backing the session and cart
// records. Each record lives under its own key; values are opaque bytes.
// Read reports ok=false when the key is absent, which callers treat the
// same as any read failure: start from an empty state.
type Storage interface {
	Read(ctx context.Context, key string) (data []byte, ok bool, err error)
	Write(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}
