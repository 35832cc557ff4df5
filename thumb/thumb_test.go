package thumb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cimg "github.com/go-imsto/thumbcache/image"
)

func openFake(t *testing.T, f *fakePlatform, opts ...Option) *Session {
	s, err := Open(append([]Option{WithPlatform(f)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBitmapEndToEnd(t *testing.T) {
	f := newFake()
	s := openFake(t, f)

	data, err := s.Bitmap(`C:\photos\sample.jpeg`, S96)
	require.NoError(t, err)

	le := binary.LittleEndian
	assert.Equal(t, []byte{0x42, 0x4d}, data[:2])
	w := int32(le.Uint32(data[18:]))
	h := int32(le.Uint32(data[22:]))
	assert.Equal(t, int32(96), w)
	assert.Equal(t, int32(-72), h)
	assert.LessOrEqual(t, int(w), 96)
	assert.LessOrEqual(t, int(-h), 96)
	assert.Equal(t, uint16(32), le.Uint16(data[28:]))
	assert.Equal(t, cimg.HeadersSize+4*96*72, len(data))
	assert.Equal(t, uint32(len(data)), le.Uint32(data[2:]))

	assert.Equal(t, FlagThumbnailOnly, f.lastFlags)
	assert.Equal(t, S96, f.lastSize)
	assert.Zero(t, f.leaks())
	assert.Zero(t, f.badReleases)
}

func TestMaterializeLength(t *testing.T) {
	sizes := []Size{{1, 1}, {16, 16}, {33, 7}, {96, 72}, {255, 256}}
	for _, sz := range sizes {
		for _, embed := range []bool{false, true} {
			f := newFake()
			f.source = sz
			s := openFake(t, f)

			h, err := s.Acquire("file.png", S2560)
			require.NoError(t, err)
			data, g, err := s.Materialize(h, embed)
			require.NoError(t, err)

			want := 4 * sz.Width * sz.Height
			if embed {
				want += cimg.HeadersSize
				fh, ih, err := cimg.ParseHeaders(data)
				require.NoError(t, err)
				assert.Equal(t, uint32(cimg.HeadersSize), fh.DataOffset)
				assert.Equal(t, int32(-sz.Height), ih.Height)
			}
			assert.Equal(t, want, len(data), "%s embed %v", sz, embed)
			assert.Equal(t, sz.Width, g.Width)
			assert.Equal(t, sz.Height, g.Height)
			assert.Equal(t, 32, g.BitsPerPixel)
			assert.Zero(t, f.leaks())
		}
	}
}

func TestMaterializeTopDownFromNegativeSource(t *testing.T) {
	f := newFake()
	f.source = Size{20, 10}
	s := openFake(t, f)

	h, err := s.Acquire("file.png", S96)
	require.NoError(t, err)
	f.geom[h] = Geometry{Width: 20, Height: -10, Stride: 80, BitsPerPixel: 32}

	data, g, err := s.Materialize(h, true)
	require.NoError(t, err)
	_, ih, err := cimg.ParseHeaders(data)
	require.NoError(t, err)
	assert.Equal(t, int32(-10), ih.Height)
	assert.Equal(t, 10, g.Height)
}

func TestNativeDepth(t *testing.T) {
	tests := []struct {
		bpp, want int
	}{
		{24, 24},
		{16, 16},
		{32, 32},
		{8, 32},
		{1, 32},
	}
	for _, tt := range tests {
		f := newFake()
		f.source = Size{5, 3}
		f.sourceBPP = tt.bpp
		s := openFake(t, f, WithNativeDepth(true))

		data, err := s.Bitmap("file.png", S96)
		require.NoError(t, err)
		_, ih, err := cimg.ParseHeaders(data)
		require.NoError(t, err)
		assert.Equal(t, uint16(tt.want), ih.BitCount, "source bpp %d", tt.bpp)
		assert.Equal(t, cimg.HeadersSize+cimg.Stride(5, tt.want)*3, len(data))
	}
}

func TestAcquireErrors(t *testing.T) {
	t.Run("missing path", func(t *testing.T) {
		f := newFake()
		s := openFake(t, f)
		_, err := s.Bitmap(`C:\missing\nothing.jpg`, S96)
		assert.ErrorIs(t, err, ErrPathResolution)
		assert.Equal(t, uint32(0x80070002), StatusCode(err))
		assert.Zero(t, f.transfers)
		assert.Zero(t, f.dcs)
		assert.Zero(t, f.leaks())
	})

	t.Run("bad syntax", func(t *testing.T) {
		f := newFake()
		s := openFake(t, f)
		for _, p := range []string{"", "a\x00b"} {
			_, err := s.Bitmap(p, S96)
			assert.ErrorIs(t, err, ErrPathResolution)
		}
		assert.Zero(t, f.parsed)
	})

	t.Run("invalid size", func(t *testing.T) {
		f := newFake()
		s := openFake(t, f)
		_, err := s.Bitmap("file.jpg", Size{0, 96})
		assert.ErrorIs(t, err, ErrInvalidSize)
		assert.Zero(t, f.parsed)
	})

	t.Run("no capability", func(t *testing.T) {
		f := newFake()
		f.noImage = true
		s := openFake(t, f)
		_, err := s.Bitmap("file.txt", S96)
		assert.ErrorIs(t, err, ErrCapability)
		assert.Equal(t, uint32(0x80004002), StatusCode(err))
		assert.Zero(t, f.leaks())
		assert.Zero(t, f.badReleases)
	})

	t.Run("acquisition", func(t *testing.T) {
		f := newFake()
		f.getImageErr = codeFail
		s := openFake(t, f)
		_, err := s.Bitmap("corrupt.jpg", S96)
		assert.ErrorIs(t, err, ErrAcquisition)
		var ce *CodeError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, uint32(0x80004005), ce.Code)
		assert.Equal(t, "corrupt.jpg", ce.Path)
		assert.Contains(t, err.Error(), "0x80004005")
		assert.Zero(t, f.transfers)
		assert.Zero(t, f.leaks())
	})
}

func TestMaterializeErrors(t *testing.T) {
	t.Run("geometry", func(t *testing.T) {
		f := newFake()
		f.geometryErr = codeInvalidParam
		s := openFake(t, f)
		_, err := s.Bitmap("file.jpg", S96)
		assert.ErrorIs(t, err, ErrGeometryQuery)
		assert.Equal(t, uint32(87), StatusCode(err))
		assert.Zero(t, f.dcs)
		assert.Zero(t, f.leaks())
	})

	t.Run("empty geometry", func(t *testing.T) {
		f := newFake()
		s := openFake(t, f)
		h, err := s.Acquire("file.jpg", S96)
		require.NoError(t, err)
		f.geom[h] = Geometry{}
		_, _, err = s.Materialize(h, true)
		assert.ErrorIs(t, err, ErrGeometryQuery)
		assert.Zero(t, f.leaks())
	})

	t.Run("transfer", func(t *testing.T) {
		f := newFake()
		f.failTransfer = func(int) bool { return true }
		s := openFake(t, f)
		_, err := s.Bitmap("file.jpg", S96)
		assert.ErrorIs(t, err, ErrPixelTransfer)
		assert.Equal(t, uint32(87), StatusCode(err))
		assert.Equal(t, 1, f.dcs)
		assert.Zero(t, f.leaks())
		assert.Zero(t, f.badReleases)
	})
}

func TestReleaseIdempotence(t *testing.T) {
	f := newFake()
	f.failTransfer = func(call int) bool { return call%2 == 0 }
	s := openFake(t, f)

	const n = 10
	var ok, failed int
	for i := 0; i < n; i++ {
		_, err := s.Bitmap("file.jpg", S48)
		if err != nil {
			assert.ErrorIs(t, err, ErrPixelTransfer)
			failed++
			continue
		}
		ok++
	}
	assert.Equal(t, n/2, ok)
	assert.Equal(t, n/2, failed)
	assert.Equal(t, n, f.transfers)
	assert.Equal(t, n, f.dcs)
	assert.Zero(t, f.leaks())
	assert.Zero(t, f.badReleases)
	assert.Equal(t, 1, f.inits)
}

func TestFlags(t *testing.T) {
	f := newFake()
	s := openFake(t, f, WithFallback(true))
	_, err := s.Bitmap("file.jpg", S96)
	require.NoError(t, err)
	assert.Equal(t, FlagResizeToFit, f.lastFlags)
}

func TestBiggerSizeOK(t *testing.T) {
	f := newFake()
	s := openFake(t, f, WithBiggerSizeOK(true), WithNativeDepth(true))
	data, err := s.Bitmap("file.jpg", S96)
	require.NoError(t, err)
	assert.Equal(t, FlagThumbnailOnly|FlagBiggerSizeOK, f.lastFlags)

	_, ih, err := cimg.ParseHeaders(data)
	require.NoError(t, err)
	assert.Equal(t, int32(96), ih.Width)
	assert.Equal(t, int32(-72), ih.Height)
	assert.Equal(t, uint16(32), ih.BitCount)
	assert.Equal(t, cimg.HeadersSize+4*96*72, len(data))

	m, _, err := cimg.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 96, 72), m.Bounds())
	assert.Zero(t, f.leaks())
}

func TestAcquireMaterializeBiggerSizeOK(t *testing.T) {
	f := newFake()
	s := openFake(t, f, WithBiggerSizeOK(true))

	h, err := s.Acquire("file.jpg", S96)
	require.NoError(t, err)
	assert.Equal(t, 400, f.geom[h].Width)

	data, g, err := s.Materialize(h, true)
	require.NoError(t, err)
	assert.Equal(t, Geometry{Width: 96, Height: 72, Stride: 4 * 96, BitsPerPixel: 32}, g)
	_, ih, err := cimg.ParseHeaders(data)
	require.NoError(t, err)
	assert.Equal(t, int32(96), ih.Width)
	assert.Equal(t, int32(-72), ih.Height)
	assert.Equal(t, cimg.HeadersSize+4*96*72, len(data))
	assert.Empty(t, s.bounds)
	assert.Zero(t, f.leaks())
}

func TestSession(t *testing.T) {
	f := newFake()
	s, err := Open(WithPlatform(f))
	require.NoError(t, err)
	assert.Equal(t, 1, f.inits)

	require.NoError(t, s.enter())
	_, err = s.Bitmap("file.jpg", S96)
	assert.ErrorIs(t, err, ErrSessionBusy)
	assert.ErrorIs(t, s.Close(), ErrSessionBusy)
	assert.Zero(t, f.uninits)
	s.leave()

	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
	assert.Equal(t, 1, f.uninits)

	_, err = s.Bitmap("file.jpg", S96)
	assert.ErrorIs(t, err, ErrSessionClosed)
	_, err = s.Acquire("file.jpg", S96)
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.Zero(t, f.parsed)
}

func TestSessionInitFail(t *testing.T) {
	f := newFake()
	f.initErr = codeFail
	_, err := Open(WithPlatform(f))
	assert.ErrorIs(t, err, ErrEnvironment)
	assert.Equal(t, uint32(0x80004005), StatusCode(err))
	assert.Zero(t, f.uninits)
}

func TestGetBitmap(t *testing.T) {
	f := newFake()
	data, err := GetBitmap("file.jpg", 96, 96, WithPlatform(f))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("BM")))
	assert.Equal(t, 1, f.inits)
	assert.Equal(t, 1, f.uninits)
	assert.Zero(t, f.leaks())

	_, err = GetBitmap("missing.jpg", 96, 96, WithPlatform(f))
	assert.ErrorIs(t, err, ErrPathResolution)
	assert.Equal(t, 2, f.uninits)
}

func TestGetCompressed(t *testing.T) {
	f := newFake()
	high, err := GetCompressed("file.jpg", 96, 96, 85, WithPlatform(f))
	require.NoError(t, err)
	low, err := GetCompressed("file.jpg", 96, 96, 10, WithPlatform(f), WithFormat("JPG"))
	require.NoError(t, err)
	assert.Less(t, len(low), len(high))

	for _, data := range [][]byte{high, low} {
		assert.Equal(t, cimg.TypeJPEG, cimg.GuessType(data))
		m, _, err := cimg.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, 96, m.Bounds().Dx())
		assert.Equal(t, 72, m.Bounds().Dy())
	}

	pngData, err := GetCompressed("file.jpg", 96, 96, 50, WithPlatform(f), WithFormat("png"))
	require.NoError(t, err)
	assert.Equal(t, cimg.TypePNG, cimg.GuessType(pngData))

	_, err = GetCompressed("file.jpg", 96, 96, 120, WithPlatform(f))
	assert.ErrorIs(t, err, cimg.ErrInvalidQuality)
	assert.Zero(t, f.leaks())
	assert.Equal(t, f.inits, f.uninits)
}

func TestSessionPerGoroutine(t *testing.T) {
	fakes := make([]*fakePlatform, 4)
	var wg sync.WaitGroup
	for i := range fakes {
		fakes[i] = newFake()
		wg.Add(1)
		go func(f *fakePlatform) {
			defer wg.Done()
			_, err := GetBitmap("file.jpg", 32, 32, WithPlatform(f))
			assert.NoError(t, err)
		}(fakes[i])
	}
	wg.Wait()
	for _, f := range fakes {
		assert.Equal(t, 1, f.inits)
		assert.Equal(t, 1, f.uninits)
		assert.Zero(t, f.leaks())
	}
}
