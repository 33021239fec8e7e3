// Package registry maps logical field types to codec instances. It is the
// concrete type the design notes describe as resolving array codecs'
// recursive dispatch: it implements codec.Resolver and is wired into every
// array codec it holds via SetResolver once construction is complete.
package registry

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/semcol/codec"
	"github.com/arloliu/semcol/errs"
	"github.com/arloliu/semcol/format"
)

// Registry maps format.FieldType to a single registered codec.Codec.
// Registration is not safe for concurrent use; concurrent read-only lookups
// (Get, Supports) are safe once construction has finished.
type Registry struct {
	codecs map[format.FieldType]codec.Codec
	logger *zap.Logger
}

// New creates an empty registry with a no-op logger.
func New() *Registry {
	return &Registry{codecs: make(map[format.FieldType]codec.Codec), logger: zap.NewNop()}
}

// SetLogger installs logger for Register's overwrite warnings. The
// compressor wires its own logger in here so registration warnings show up
// alongside the rest of its structured logging.
func (r *Registry) SetLogger(logger *zap.Logger) {
	r.logger = logger
}

// Register installs c as the codec for its own Type(), overwriting any
// codec previously registered for that type. Overwriting an existing
// registration logs a warning rather than failing, since the caller may be
// deliberately substituting a codec.
func (r *Registry) Register(c codec.Codec) {
	if existing, ok := r.codecs[c.Type()]; ok {
		r.logger.Warn("registry: overwriting codec for field type",
			zap.String("type", c.Type().String()),
			zap.String("previous_codec", fmt.Sprintf("%T", existing)),
			zap.String("new_codec", fmt.Sprintf("%T", c)),
		)
	}

	r.codecs[c.Type()] = c
}

// Get returns the codec registered for t, or a NoCodec error if absent.
func (r *Registry) Get(t format.FieldType) (codec.Codec, error) {
	c, ok := r.codecs[t]
	if !ok {
		return nil, errs.NewNoCodec(t)
	}

	return c, nil
}

// Supports reports whether a codec is registered for t.
func (r *Registry) Supports(t format.FieldType) bool {
	_, ok := r.codecs[t]

	return ok
}

// Default builds the registry the compressor uses unless a caller supplies
// their own via WithRegistry: one codec per logical type, with the array
// codecs wired back to this same registry so their recursive dispatch
// resolves to the instances registered here.
func Default() *Registry {
	r := New()

	r.Register(codec.NewUUIDCodec())
	r.Register(codec.NewTimestampCodec())
	r.Register(codec.NewBooleanCodec())
	r.Register(codec.NewNumberCodec())
	r.Register(codec.NewStringCodec())
	r.Register(codec.NewEnumCodec())

	arrayPrimitive := codec.NewArrayPrimitiveCodec()
	arrayPrimitive.SetResolver(r)
	r.Register(arrayPrimitive)

	arrayObject := codec.NewArrayObjectCodec()
	arrayObject.SetResolver(r)
	r.Register(arrayObject)

	return r
}
