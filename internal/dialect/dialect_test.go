package dialect

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyclone1070/shellfs/internal/models"
)

func TestBuiltinDialectsAreComplete(t *testing.T) {
	for _, d := range []*Dialect{Unix(), Windows()} {
		t.Run(d.Name(), func(t *testing.T) {
			require.NoError(t, d.Validate())
			for _, op := range Operations() {
				cmd, err := d.Lookup(op)
				require.NoError(t, err, op.String())
				assert.NotEmpty(t, cmd.Template)
				assert.NotNil(t, cmd.Parse)
			}
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Unix().Lookup(OpUnknown)

	var unknown *UnknownOperationError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "unix", unknown.Dialect)
	assert.True(t, errors.Is(err, ErrUnknownOperation))
}

func TestValidate_PartialTable(t *testing.T) {
	d := newDialect("stub", []string{"sh", "-c"}, "/", quoteUnix, map[Operation]Command{
		OpInfo: {Template: "ls -ladL {path}", Parse: discardOutput},
	})

	err := d.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownOperation))

	assert.Equal(t, models.NotFoundEntry("x"), d.ParseInfo("x", "anything"))
	assert.Empty(t, d.ParseListDir("x", "anything"))
}

func TestMakeCommand(t *testing.T) {
	tests := []struct {
		name    string
		dialect *Dialect
		op      Operation
		path    string
		params  Params
		want    string
	}{
		{"unix info", Unix(), OpInfo, "some_file.txt", nil, "ls -ladL some_file.txt"},
		{"unix listdir", Unix(), OpListDir, "/tmp", nil, "ls -laF /tmp"},
		{"unix quoted", Unix(), OpInfo, "my file.txt", nil, "ls -ladL 'my file.txt'"},
		{"unix single quote", Unix(), OpRemove, "it's", nil, `rm -f 'it'"'"'s'`},
		{"unix leading dash", Unix(), OpTouch, "-rf", nil, "touch ./-rf"},
		{"unix tilde kept", Unix(), OpMakeDirs, "~/a/b", nil, "mkdir -p ~/a/b"},
		{"unix copy", Unix(), OpCopy, "a.txt", Params{"dest": "b dir/a.txt"}, "cp a.txt 'b dir/a.txt'"},
		{"windows info", Windows(), OpInfo, `C:\Users`, nil, `dir /a /-c C:\Users`},
		{"windows quoted", Windows(), OpRemoveTree, `C:\Program Files\x`, nil, `rmdir /s /q "C:\Program Files\x"`},
		{"windows makedirs", Windows(), OpMakeDirs, `C:\a\b`, nil, `if not exist C:\a\b mkdir C:\a\b`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.dialect.MakeCommand(tt.op, tt.path, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMakeCommand_MissingParam(t *testing.T) {
	_, err := Unix().MakeCommand(OpCopy, "a.txt", nil)

	var missing *MissingParamError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "dest", missing.Param)
	assert.True(t, missing.InvalidInput())
}

func TestMakeCommand_UnknownOperation(t *testing.T) {
	_, err := Windows().MakeCommand(OpUnknown, "x", nil)
	assert.ErrorIs(t, err, ErrUnknownOperation)
}

func TestParseInfoDispatch(t *testing.T) {
	entry := Unix().ParseInfo("some_file.txt", "-rw-r--r--  1 alice  users  4001 1730054321 some_file.txt")
	assert.Equal(t, models.PathEntry{Name: "some_file.txt", Type: models.File, Size: 4001}, entry)

	assert.Equal(t, models.NotFoundEntry("x"), Unix().ParseInfo("x", ""))
}

func TestJoinAndParent(t *testing.T) {
	u := Unix()
	assert.Equal(t, "/tmp/a", u.Join("/tmp", "a"))
	assert.Equal(t, "/tmp/a", u.Join("/tmp/", "a"))
	assert.Equal(t, "a", u.Join(".", "a"))
	assert.Equal(t, "/tmp", u.Parent("/tmp/a"))
	assert.Equal(t, "/tmp", u.Parent("/tmp/a/"))
	assert.Equal(t, "/", u.Parent("/tmp"))
	assert.Equal(t, "/", u.Parent("/"))
	assert.Equal(t, ".", u.Parent("a"))
	assert.Equal(t, "a", u.Base("/tmp/a/"))

	w := Windows()
	assert.Equal(t, `C:\Users\a`, w.Join(`C:\Users`, "a"))
	assert.Equal(t, `C:\a`, w.Join(`C:\`, "a"))
	assert.Equal(t, `C:\Users`, w.Parent(`C:\Users\a`))
	assert.Equal(t, `C:\`, w.Parent(`C:\Users`))
	assert.Equal(t, `C:\`, w.Parent(`C:\`))
	assert.Equal(t, "a.txt", w.Base(`C:\Users\a.txt`))
}

func TestByName(t *testing.T) {
	d, err := ByName("UNIX")
	require.NoError(t, err)
	assert.Same(t, Unix(), d)

	d, err = ByName("cmd")
	require.NoError(t, err)
	assert.Same(t, Windows(), d)

	_, err = ByName("fish")
	var unknown *UnknownDialectError
	assert.True(t, errors.As(err, &unknown))
}

func TestOperation_Mutating(t *testing.T) {
	assert.False(t, OpInfo.Mutating())
	assert.False(t, OpListDir.Mutating())
	assert.True(t, OpCopy.Mutating())
	assert.Equal(t, "rmtree", OpRemoveTree.String())
}

func TestNewDialect(t *testing.T) {
	t.Run("Partial table", func(t *testing.T) {
		d, err := NewDialect(Definition{
			Name:        "busybox",
			Interpreter: []string{"sh", "-c"},
			Commands: map[Operation]Command{
				OpInfo: {Template: "ls -ld {path}", Parse: func(path, output string) []models.PathEntry {
					return []models.PathEntry{ParseUnixInfo(path, output)}
				}},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "/", d.Separator())

		cmd, err := d.MakeCommand(OpInfo, "a b", nil)
		require.NoError(t, err)
		assert.Equal(t, "ls -ld 'a b'", cmd)

		_, err = d.MakeCommand(OpRemove, "a", nil)
		assert.ErrorIs(t, err, ErrUnknownOperation)
	})

	t.Run("Missing interpreter", func(t *testing.T) {
		_, err := NewDialect(Definition{Name: "x"})
		var invalid *InvalidDefinitionError
		require.True(t, errors.As(err, &invalid))
		assert.Contains(t, invalid.Error(), "interpreter")
	})

	t.Run("Empty template", func(t *testing.T) {
		_, err := NewDialect(Definition{
			Name:        "x",
			Interpreter: []string{"sh", "-c"},
			Commands:    map[Operation]Command{OpInfo: {}},
		})
		var invalid *InvalidDefinitionError
		assert.True(t, errors.As(err, &invalid))
	})
}
