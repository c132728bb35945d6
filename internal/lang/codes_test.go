package lang

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	req := require.New(t)

	req.NoError(Validate("eng_Latn"))
	req.NoError(Validate("tcy_Knda"))

	err := Validate("xx_Latn")
	req.Error(err)
	var unsupported UnsupportedError
	req.ErrorAs(err, &unsupported)
	req.Equal(Code("xx_Latn"), unsupported.Code)
}

func TestName(t *testing.T) {
	req := require.New(t)
	req.Equal("French", Name("fra_Latn"))
	// Unknown codes fall back to the raw code.
	req.Equal("zzz_Latn", Name("zzz_Latn"))
}

func TestVoiceFor(t *testing.T) {
	req := require.New(t)

	v, ok := VoiceFor("fra_Latn")
	req.True(ok)
	req.Equal("fr", v)

	// Sanskrit is in the vocabulary but has no voice mapping.
	_, ok = VoiceFor("san_Deva")
	req.False(ok)
}

func TestLowSupport(t *testing.T) {
	req := require.New(t)
	req.True(LowSupport("tcy_Knda"))
	req.False(LowSupport("eng_Latn"))
}

func TestAll_CoversVocabulary(t *testing.T) {
	req := require.New(t)
	all := All()
	req.Len(all, len(names))
	for _, c := range all {
		req.True(Valid(c))
	}
}

func TestDetect_English(t *testing.T) {
	req := require.New(t)
	code := Detect("The quick brown fox jumps over the lazy dog and keeps on running through the field")
	req.Equal(Code("eng_Latn"), code)
}

func TestDetect_AlwaysShapedLikeACode(t *testing.T) {
	req := require.New(t)
	code := Detect("zzzz qqqq wwww")
	req.True(strings.Contains(string(code), "_"), "got %q", code)
}
