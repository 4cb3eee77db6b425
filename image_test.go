package locimg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/locimg"
)

func TestImageRef_Rewrite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ref  locimg.ImageRef
		path string
		want string
	}{
		{
			name: "inline image keeps alt text",
			ref: locimg.ImageRef{
				RemoteURL: "https://example.com/logo.png",
				RawMatch:  "![logo](https://example.com/logo.png)",
				Start:     10,
				End:       47,
				URLStart:  18,
				URLEnd:    46,
			},
			path: "images/logo.png",
			want: "![logo](images/logo.png)",
		},
		{
			name: "inline image keeps title",
			ref: locimg.ImageRef{
				RemoteURL: "https://example.com/a.png",
				RawMatch:  `![a](https://example.com/a.png "the title")`,
				Start:     0,
				End:       43,
				URLStart:  5,
				URLEnd:    30,
			},
			path: "images/a.png",
			want: `![a](images/a.png "the title")`,
		},
		{
			name: "url-only span replaces just the destination",
			ref: locimg.ImageRef{
				RemoteURL: "https://example.com/b.png",
				RawMatch:  "https://example.com/b.png",
				Start:     5,
				End:       30,
				URLStart:  5,
				URLEnd:    30,
			},
			path: "images/b.png",
			want: "images/b.png",
		},
		{
			name: "alt text containing the URL is untouched",
			ref: locimg.ImageRef{
				RemoteURL: "https://x.io/i.png",
				RawMatch:  "![https://x.io/i.png](https://x.io/i.png)",
				Start:     0,
				End:       41,
				URLStart:  22,
				URLEnd:    40,
			},
			path: "i.png",
			want: "![https://x.io/i.png](i.png)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.NoError(t, tt.ref.Validate())
			assert.Equal(t, tt.want, tt.ref.Rewrite(tt.path))
		})
	}
}

func TestImageRef_Validate(t *testing.T) {
	t.Parallel()

	t.Run("missing URL", func(t *testing.T) {
		t.Parallel()

		ref := locimg.ImageRef{RawMatch: "![a](x)"}
		err := ref.Validate()

		require.Error(t, err)
		assert.Equal(t, locimg.EINVALID, locimg.ErrorCode(err))
	})

	t.Run("offsets out of order", func(t *testing.T) {
		t.Parallel()

		ref := locimg.ImageRef{
			RemoteURL: "https://example.com/a.png",
			RawMatch:  "x",
			Start:     5,
			End:       6,
			URLStart:  4,
			URLEnd:    6,
		}
		err := ref.Validate()

		require.Error(t, err)
		assert.Equal(t, locimg.EINVALID, locimg.ErrorCode(err))
	})

	t.Run("span length mismatch", func(t *testing.T) {
		t.Parallel()

		ref := locimg.ImageRef{
			RemoteURL: "https://example.com/a.png",
			RawMatch:  "short",
			Start:     0,
			End:       100,
			URLStart:  0,
			URLEnd:    100,
		}
		err := ref.Validate()

		require.Error(t, err)
		assert.Equal(t, locimg.EINVALID, locimg.ErrorCode(err))
	})
}
