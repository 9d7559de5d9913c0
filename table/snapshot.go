package table

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/conego/blobstore"
	"github.com/hupe1980/conego/codec"
	"github.com/hupe1980/conego/resource"
)

// Snapshot envelope:
//
//	[4]byte  magic "CTAB"
//	uint8    format version
//	uint8    compression type
//	uint8    codec name length, followed by the codec name
//	block    payload (see compression.go for the block format)
//
// The envelope is self-describing: the codec that wrote the payload is
// selected by name when loading.
var snapshotMagic = [4]byte{'C', 'T', 'A', 'B'}

const snapshotVersion uint8 = 1

var (
	// ErrInvalidSnapshot is returned when a snapshot fails header validation.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
	// ErrUnknownCodec is returned when a snapshot was written with a codec
	// this build does not know.
	ErrUnknownCodec = errors.New("unknown snapshot codec")
)

// SnapshotOptions configures Save and Load.
type SnapshotOptions struct {
	// Codec encodes the table payload. Defaults to codec.Default.
	Codec codec.Codec

	// Compression selects the payload compression. Defaults to
	// CompressionZSTD.
	Compression CompressionType

	// Controller, if set, rate-limits snapshot IO.
	Controller *resource.Controller
}

// WithCodec sets the payload codec.
func WithCodec(c codec.Codec) func(o *SnapshotOptions) {
	return func(o *SnapshotOptions) {
		o.Codec = c
	}
}

// WithCompression sets the payload compression.
func WithCompression(ct CompressionType) func(o *SnapshotOptions) {
	return func(o *SnapshotOptions) {
		o.Compression = ct
	}
}

// WithController sets the resource controller used to rate-limit IO.
func WithController(rc *resource.Controller) func(o *SnapshotOptions) {
	return func(o *SnapshotOptions) {
		o.Controller = rc
	}
}

// snapshotPayload is the codec-encoded body of a snapshot.
type snapshotPayload struct {
	Dims []int             `json:"dims"`
	Rows []map[int]float32 `json:"rows"`
	Errs []string          `json:"errs"`
}

func applySnapshotOptions(optFns []func(o *SnapshotOptions)) SnapshotOptions {
	opts := SnapshotOptions{
		Codec:       codec.Default,
		Compression: CompressionZSTD,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Codec == nil {
		opts.Codec = codec.Default
	}
	return opts
}

// Save persists the table to the blob store under the given name.
func Save(ctx context.Context, store blobstore.BlobStore, name string, t *FeatureTable, optFns ...func(o *SnapshotOptions)) error {
	opts := applySnapshotOptions(optFns)

	payload, err := opts.Codec.Marshal(snapshotPayload{
		Dims: t.dims,
		Rows: t.rows,
		Errs: t.errs,
	})
	if err != nil {
		return fmt.Errorf("encode snapshot payload: %w", err)
	}

	block, err := compressBlock(payload, opts.Compression)
	if err != nil {
		return fmt.Errorf("compress snapshot payload: %w", err)
	}

	codecName := opts.Codec.Name()
	if len(codecName) > 255 {
		return fmt.Errorf("%w: codec name too long", ErrInvalidSnapshot)
	}

	var buf bytes.Buffer
	buf.Write(snapshotMagic[:])
	buf.WriteByte(snapshotVersion)
	buf.WriteByte(byte(opts.Compression))
	buf.WriteByte(byte(len(codecName)))
	buf.WriteString(codecName)
	buf.Write(block)

	w, err := store.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("create snapshot blob: %w", err)
	}

	lw := resource.NewRateLimitedWriter(ctx, w, opts.Controller)
	if _, err := lw.Write(buf.Bytes()); err != nil {
		_ = w.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := w.Sync(); err != nil {
		_ = w.Close()
		return fmt.Errorf("sync snapshot: %w", err)
	}

	return w.Close()
}

// Load reads a table previously written by Save.
func Load(ctx context.Context, store blobstore.BlobStore, name string, optFns ...func(o *SnapshotOptions)) (*FeatureTable, error) {
	opts := applySnapshotOptions(optFns)

	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = blob.Close() }()

	if err := opts.Controller.WaitIO(ctx, int(blob.Size())); err != nil {
		return nil, err
	}

	data, err := blobstore.ReadAll(ctx, blob)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	// magic(4) + version(1) + compression(1) + codec name length(1)
	if len(data) < 7 || !bytes.Equal(data[:4], snapshotMagic[:]) {
		return nil, fmt.Errorf("%w: bad magic", ErrInvalidSnapshot)
	}
	if data[4] != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, data[4])
	}

	compression := CompressionType(data[5])
	nameLen := int(data[6])
	if len(data) < 7+nameLen {
		return nil, fmt.Errorf("%w: truncated header", ErrInvalidSnapshot)
	}

	codecName := string(data[7 : 7+nameLen])
	c, ok := codec.ByName(codecName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, codecName)
	}

	payload, err := decompressBlock(data[7+nameLen:], compression)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot payload: %w", err)
	}

	var body snapshotPayload
	if err := c.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("decode snapshot payload: %w", err)
	}

	if len(body.Rows) != len(body.Errs) {
		return nil, fmt.Errorf("%w: row/error length mismatch", ErrInvalidSnapshot)
	}

	return &FeatureTable{
		dims: body.Dims,
		rows: body.Rows,
		errs: body.Errs,
	}, nil
}
