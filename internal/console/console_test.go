package console

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitaCOEUR/devcmd/internal/commands"
	"github.com/NikitaCOEUR/devcmd/internal/completion"
	"github.com/NikitaCOEUR/devcmd/internal/derrors"
	"github.com/NikitaCOEUR/devcmd/internal/tokenizer"
)

func newTestConsole(t *testing.T, input string) (*Console, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer
	table := commands.NewTable(&out, nil)

	echo := commands.Command{
		Name: "test1",
		Args: []string{"name1", "quoted"},
		Handler: func(_ context.Context, w io.Writer, args []tokenizer.Argument) error {
			for _, arg := range args {
				_, _ = fmt.Fprintf(w, "ran %s=%s\n", arg.Name, strings.Join(arg.Values, ","))
			}
			return nil
		},
	}
	require.NoError(t, table.Register(echo,
		commands.Static("name1", 0, completion.FlagsDefault, "val11", "val12"),
		commands.Static("quoted", 0, completion.FlagsDefault, "two words", "three hella words"),
	))

	fail := commands.Command{
		Name: "fail",
		Handler: func(context.Context, io.Writer, []tokenizer.Argument) error {
			return errors.New("disk full")
		},
	}
	require.NoError(t, table.Register(fail))

	c, err := New(Config{In: strings.NewReader(input), Out: &out}, table, completion.NewEngine(table, nil), nil)
	require.NoError(t, err)
	return c, &out
}

func TestNew(t *testing.T) {
	c, _ := newTestConsole(t, "")

	_, ok := c.table.Lookup("exit")
	assert.True(t, ok)
	assert.Equal(t, DefaultPrompt, c.cfg.Prompt)
	assert.False(t, c.Exited())

	_, err := New(Config{}, c.table, c.engine, nil)
	require.Error(t, err)
	var exists *derrors.AlreadyExistsError
	assert.True(t, errors.As(err, &exists))
}

func TestConsole_Execute(t *testing.T) {
	c, out := newTestConsole(t, "")
	ctx := context.Background()

	require.NoError(t, c.Execute(ctx, "   "))
	assert.Empty(t, out.String())

	require.NoError(t, c.Execute(ctx, "test1 -name1 val11"))
	assert.Equal(t, "ran name1=val11\n", out.String())

	err := c.Execute(ctx, "bogus")
	var unknown *derrors.UnknownCommandError
	assert.True(t, errors.As(err, &unknown))

	err = c.Execute(ctx, "exit now")
	var invalid *derrors.ValidationError
	assert.True(t, errors.As(err, &invalid))
	assert.False(t, c.Exited())

	require.NoError(t, c.Execute(ctx, "EXIT"))
	assert.True(t, c.Exited())
}

func TestConsole_Run(t *testing.T) {
	c, out := newTestConsole(t, "test1 abc\n\nbogus\nfail\ntest1 \"unclosed\nexit\ntest1 never\n")

	require.NoError(t, c.Run(context.Background()))
	assert.True(t, c.Exited())

	output := out.String()
	assert.Contains(t, output, "> ")
	assert.Contains(t, output, "ran =abc")
	assert.Contains(t, output, "⚠ command bogus not found")
	assert.Contains(t, output, "✗ command failed: disk full")
	assert.Equal(t, 2, strings.Count(output, "⚠"), "unknown command and malformed line are warnings")
	assert.NotContains(t, output, "never")
}

func TestConsole_Run_EndOfInput(t *testing.T) {
	c, out := newTestConsole(t, "test1 abc")

	require.NoError(t, c.Run(context.Background()))
	assert.False(t, c.Exited())
	assert.Contains(t, out.String(), "ran =abc")
	assert.True(t, strings.HasSuffix(out.String(), "> \n"))
}

func TestConsole_Run_Cancelled(t *testing.T) {
	c, _ := newTestConsole(t, "test1 abc\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConsole_CompleteWord(t *testing.T) {
	c, _ := newTestConsole(t, "")

	tests := []struct {
		name     string
		line     string
		pos      int
		wantHead string
		want     []string
		wantTail string
	}{
		{
			name: "command extended",
			line: "te",
			pos:  2,
			want: []string{"test1 "},
		},
		{
			name:     "cursor inside the line",
			line:     "te rest",
			pos:      2,
			want:     []string{"test1 "},
			wantTail: " rest",
		},
		{
			name: "value extended",
			line: "test1 -name1 val",
			pos:  16,
			want: []string{"test1 -name1 val1"},
		},
		{
			name:     "ambiguous value lists candidates",
			line:     "test1 -name1 val1",
			pos:      17,
			wantHead: "test1 -name1 ",
			want:     []string{"val11", "val12"},
		},
		{
			name:     "ambiguous quoted value",
			line:     `test1 -quoted "t`,
			pos:      16,
			wantHead: `test1 -quoted "`,
			want:     []string{"three hella words", "two words"},
		},
		{
			name:     "unquoted value candidates are quoted",
			line:     "test1 -quoted t",
			pos:      15,
			wantHead: "test1 -quoted ",
			want:     []string{`"three hella words"`, `"two words"`},
		},
		{
			name:     "nothing matches",
			line:     "zz",
			pos:      2,
			wantHead: "zz",
		},
		{
			name:     "unknown command",
			line:     "bogus -",
			pos:      7,
			wantHead: "bogus -",
		},
		{
			name:     "position past the end",
			line:     "test1 -name1 val1",
			pos:      99,
			wantHead: "test1 -name1 ",
			want:     []string{"val11", "val12"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			head, completions, tail := c.completeWord(tt.line, tt.pos)
			assert.Equal(t, tt.wantHead, head)
			assert.Equal(t, tt.want, completions)
			assert.Equal(t, tt.wantTail, tail)
		})
	}
}
