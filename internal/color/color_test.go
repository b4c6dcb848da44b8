package color_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalnine/tmc/internal/color"
)

func TestDisabledPainterIsIdentity(t *testing.T) {
	p := color.NewPainter(false)
	for _, tag := range []color.Tag{color.Plain, color.Success, color.Failure, color.Warning, color.Compile} {
		assert.Equal(t, "text", p.Paint(tag, "text"))
	}
	assert.Equal(t, "bar", p.Color(color.Green, "bar"))
}

func TestEnabledPainterWrapsText(t *testing.T) {
	p := color.NewPainter(true)
	got := p.Paint(color.Failure, "Failed: ")
	assert.Contains(t, got, "Failed: ")
	assert.Contains(t, got, "\x1b[")
	assert.NotEqual(t, "Failed: ", got)

	assert.Equal(t, "plain", p.Paint(color.Plain, "plain"))
	assert.Equal(t, "", p.Paint(color.Success, ""))
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want color.Color
		ok   bool
	}{
		{"green", color.Green, true},
		{" RED ", color.Red, true},
		{"purple", color.Purple, true},
		{"none", color.None, true},
		{"mauve", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := color.Parse(tt.in)
			if !tt.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTagColors(t *testing.T) {
	assert.Equal(t, color.Green, color.Success.Color())
	assert.Equal(t, color.Red, color.Failure.Color())
	assert.Equal(t, color.Yellow, color.Warning.Color())
	assert.Equal(t, color.Purple, color.Compile.Color())
	assert.Equal(t, color.None, color.Plain.Color())
}
