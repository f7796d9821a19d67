package container_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-injector/framework/container"
)

// ── Bindings ──────────────────────────────────────────────────────────────────

func TestBindings_Bind(t *testing.T) {
	tests := []struct {
		name     string
		abstract reflect.Type
		concrete reflect.Type
		want     error
	}{
		{"valid", readerT, container.TypeOf[*ReaderImpl](), nil},
		{"abstract not interface", container.TypeOf[*ReaderImpl](), container.TypeOf[*ReaderImpl](), container.ErrInvalidBinding},
		{"concrete is interface", readerT, parserT, container.ErrInvalidBinding},
		{"does not implement", readerT, container.TypeOf[*ParserImpl](), container.ErrInvalidBinding},
		{"value receiver missing", readerT, container.TypeOf[ReaderImpl](), container.ErrInvalidBinding},
		{"nil", nil, nil, container.ErrInvalidBinding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := container.NewBindings().Bind(tt.abstract, tt.concrete)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBindings_Duplicate(t *testing.T) {
	b := container.NewBindings()
	require.NoError(t, container.Bind[Reader, *ReaderImpl](b))

	assert.ErrorIs(t, container.Bind[Reader, *ReaderImpl](b), container.ErrDuplicateBinding)
}

func TestBindings_LookupAndAbstracts(t *testing.T) {
	b := container.NewBindings()
	require.NoError(t, container.Bind[Store, *StoreImpl](b))
	require.NoError(t, container.Bind[Parser, *ParserImpl](b))

	got, ok := b.Lookup(parserT)
	require.True(t, ok)
	assert.Equal(t, container.TypeOf[*ParserImpl](), got)

	_, ok = b.Lookup(readerT)
	assert.False(t, ok, "Lookup(Reader) should miss")

	assert.Equal(t, []reflect.Type{parserT, storeT}, b.Abstracts())
}

// ── Registry ──────────────────────────────────────────────────────────────────

func TestRegistry_ScanCollectsTaggedFields(t *testing.T) {
	r := container.NewRegistry()
	require.NoError(t, container.Scan[*StoreImpl](r))

	points := r.InjectionPoints(container.TypeOf[*StoreImpl]())
	require.Len(t, points, 1, "Name is untagged")
	assert.Equal(t, "Parser", points[0].Field)
	assert.Equal(t, parserT, points[0].Type)
}

func TestRegistry_ScanRejectsNonStruct(t *testing.T) {
	r := container.NewRegistry()
	for _, typ := range []reflect.Type{container.TypeOf[StoreImpl](), container.TypeOf[Counter](), nil} {
		assert.ErrorIs(t, r.Scan(typ), container.ErrInvalidComponent, "Scan(%v)", typ)
	}
}

func TestRegistry_Component(t *testing.T) {
	r := container.NewRegistry()

	assert.ErrorIs(t, r.Component(readerT, nil), container.ErrInvalidComponent, "interface")
	assert.ErrorIs(t,
		r.Component(container.TypeOf[*ReaderImpl](), nil, container.InjectionPoint{Field: "X"}),
		container.ErrInvalidComponent, "incomplete point")

	require.NoError(t, container.Scan[*ReaderImpl](r))
	assert.ErrorIs(t, container.Scan[*ReaderImpl](r), container.ErrDuplicateComponent)
	assert.True(t, r.Injectable(container.TypeOf[*ReaderImpl]()))
	assert.False(t, r.Injectable(container.TypeOf[*ParserImpl]()))
}

func TestRegistry_Instance(t *testing.T) {
	r := container.NewRegistry()
	reader := &ReaderImpl{prefix: "> "}
	require.NoError(t, r.Instance(reader))

	got, err := r.Construct(container.TypeOf[*ReaderImpl]())
	require.NoError(t, err)
	assert.Same(t, reader, got)

	assert.ErrorIs(t, r.Instance(nil), container.ErrInvalidComponent)
}

func TestRegistry_DefaultConstructorAllocates(t *testing.T) {
	r := container.NewRegistry()
	require.NoError(t, container.Scan[*ReaderImpl](r))

	a, err := r.Construct(container.TypeOf[*ReaderImpl]())
	require.NoError(t, err)
	b, err := r.Construct(container.TypeOf[*ReaderImpl]())
	require.NoError(t, err)
	assert.NotSame(t, a, b)
}

func TestRegistry_ConstructUnregistered(t *testing.T) {
	_, err := container.NewRegistry().Construct(container.TypeOf[*ReaderImpl]())
	assert.ErrorIs(t, err, container.ErrUnsupportedType)
}

func TestRegistry_Types(t *testing.T) {
	r := container.NewRegistry()
	require.NoError(t, container.Scan[*StoreImpl](r))
	require.NoError(t, container.Scan[*ParserImpl](r))

	assert.Equal(t, []reflect.Type{container.TypeOf[*ParserImpl](), container.TypeOf[*StoreImpl]()}, r.Types())
}

// ── InjectionPoint ────────────────────────────────────────────────────────────

func TestInjectionPoint_Assign(t *testing.T) {
	reader := &ReaderImpl{}

	t.Run("exported field", func(t *testing.T) {
		p := &ParserImpl{}
		require.NoError(t, container.Field("Reader", readerT).Assign(p, reader))
		assert.Same(t, reader, p.Reader.(*ReaderImpl))
	})

	t.Run("missing field", func(t *testing.T) {
		assert.Error(t, container.Field("Nope", readerT).Assign(&ParserImpl{}, reader))
	})

	t.Run("wrong type", func(t *testing.T) {
		assert.Error(t, container.Field("Reader", readerT).Assign(&ParserImpl{}, &StoreImpl{}))
	})

	t.Run("owner not pointer", func(t *testing.T) {
		assert.Error(t, container.Field("Reader", readerT).Assign(ParserImpl{}, reader))
	})

	t.Run("setter wrong owner", func(t *testing.T) {
		p := container.Setter("reader", func(c *cache, r Reader) { c.reader = r })
		assert.Error(t, p.Assign(&ParserImpl{}, reader))
	})
}
