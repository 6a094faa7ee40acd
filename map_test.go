package callmap

import (
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
)

func init() {
	hclog.L().SetLevel(hclog.Trace)
}

func TestMap(t *testing.T) {
	// The superfunction most cases map from:
	// (z, y, x, *args, transpose=true, **kwargs)
	superSig, err := NewSignature(
		Positional("z"), Positional("y"), Positional("x"),
		VarArgs("args"),
		KeywordOnlyDefault("transpose", true),
		VarKeyword("kwargs"),
	)
	require.NoError(t, err)

	simpleSig, err := NewSignature(Positional("a"), Positional("b"), Positional("c"))
	require.NoError(t, err)

	// The concrete call from the motivating example.
	superCall := []Arg{
		Args(15, 18, 22, 48, 95),
		Named("something", "something else"),
		Named("lotta", "strange arguments"),
	}

	sig := func(params ...Param) *Signature {
		s, err := NewSignature(params...)
		require.NoError(t, err)
		return s
	}

	cases := []struct {
		Name  string
		Sub   interface{}
		Super interface{}
		Opts  []Arg
		Pos   []interface{}
		Kw    map[string]interface{}
		Err   string
	}{
		{
			"identical signatures round-trip",
			simpleSig,
			simpleSig,
			[]Arg{Args(1, 2, 3)},
			[]interface{}{1, 2, 3},
			map[string]interface{}{},
			"",
		},

		{
			"reordered parameters bind by name",
			sig(Positional("x"), Positional("y"), PositionalDefault("divide_by", 2)),
			superSig,
			superCall,
			[]interface{}{22, 18, 2},
			map[string]interface{}{},
			"",
		},

		{
			"override fills a missing required parameter",
			sig(Positional("y"), Positional("divide_by"), Positional("x")),
			superSig,
			append([]Arg{Override("divide_by", 4)}, superCall...),
			[]interface{}{18, 4, 22},
			map[string]interface{}{},
			"",
		},

		{
			"keyword-only default fallback",
			sig(Positional("x"), KeywordOnlyDefault("mode", "fast")),
			superSig,
			superCall,
			[]interface{}{22},
			map[string]interface{}{"mode": "fast"},
			"",
		},

		{
			"bound value beats override",
			sig(Positional("x")),
			sig(Positional("x")),
			[]Arg{Args(1), Override("x", 99)},
			[]interface{}{1},
			map[string]interface{}{},
			"",
		},

		{
			"missing required parameter",
			sig(Positional("q")),
			superSig,
			superCall,
			nil,
			nil,
			"could not be resolved",
		},

		{
			"positional overflow without a collector",
			simpleSig,
			sig(Positional("a")),
			[]Arg{Args(1, 2)},
			nil,
			nil,
			"too many positional arguments",
		},

		{
			"unexpected named argument",
			simpleSig,
			sig(Positional("a")),
			[]Arg{Args(1), Named("nope", 2)},
			nil,
			nil,
			`unexpected argument "nope"`,
		},

		{
			"named argument colliding with a positional binding",
			simpleSig,
			sig(Positional("a")),
			[]Arg{Args(1), Named("a", 2)},
			nil,
			nil,
			`duplicate argument "a"`,
		},

		{
			"varargs splice through a shared collector name",
			sig(Positional("x"), VarArgs("args")),
			superSig,
			superCall,
			[]interface{}{22, 48, 95},
			map[string]interface{}{},
			"",
		},

		{
			"varargs collector with a different name contributes nothing",
			sig(Positional("x"), VarArgs("rest")),
			superSig,
			superCall,
			[]interface{}{22},
			map[string]interface{}{},
			"",
		},

		{
			"bag merge excludes names the subfunction claims",
			sig(PositionalDefault("something", "own"), VarKeyword("kwargs")),
			superSig,
			superCall,
			[]interface{}{"own"},
			map[string]interface{}{"lotta": "strange arguments"},
			"",
		},

		{
			"collected overflow is visible under the collector name",
			sig(Positional("args")),
			superSig,
			superCall,
			[]interface{}{[]interface{}{48, 95}},
			map[string]interface{}{},
			"",
		},

		{
			"named value reaches a keyword-only parameter",
			sig(Positional("x"), KeywordOnly("transpose")),
			superSig,
			append([]Arg{Named("transpose", false)}, superCall...),
			[]interface{}{22},
			map[string]interface{}{"transpose": false},
			"",
		},

		{
			"named values from a struct",
			sig(Positional("port"), Positional("host")),
			sig(Positional("host"), Positional("port")),
			[]Arg{FromStruct(struct {
				Host string
				Port int
			}{Host: "localhost", Port: 8080})},
			[]interface{}{8080, "localhost"},
			map[string]interface{}{},
			"",
		},

		{
			"marker struct functions on both sides",
			func(in struct {
				Struct

				Y, X int
			}) {
			},
			func(in struct {
				Struct

				X, Y int
				Z    int `callmap:",default=9"`
			}) {
			},
			[]Arg{Args(1, 2)},
			[]interface{}{2, 1},
			map[string]interface{}{},
			"",
		},
	}

	for _, tt := range cases {
		t.Run(tt.Name, func(t *testing.T) {
			require := require.New(t)

			call, err := Map(tt.Sub, tt.Super, tt.Opts...)
			if tt.Err != "" {
				require.Error(err)
				t.Logf("err: %s", err)
				require.Contains(err.Error(), tt.Err)
				return
			}

			require.NoError(err)
			t.Logf("call: %s", spew.Sdump(call))
			require.Equal(tt.Pos, call.Positional())
			require.Equal(tt.Kw, call.Keyword())
		})
	}
}

func TestMap_idempotent(t *testing.T) {
	require := require.New(t)

	sub, err := NewSignature(Positional("x"), Positional("y"), VarKeyword("kwargs"))
	require.NoError(err)
	super, err := NewSignature(Positional("y"), Positional("x"), VarKeyword("kwargs"))
	require.NoError(err)

	opts := []Arg{Args(1, 2), Named("extra", "v")}
	first, err := Map(sub, super, opts...)
	require.NoError(err)
	second, err := Map(sub, super, opts...)
	require.NoError(err)

	require.Equal(first.Positional(), second.Positional())
	require.Equal(first.Keyword(), second.Keyword())
}

func TestMap_unsatisfiedDetail(t *testing.T) {
	require := require.New(t)

	sub, err := NewSignature(Positional("alpha"), Positional("x"), KeywordOnly("beta"))
	require.NoError(err)
	super, err := NewSignature(Positional("x"))
	require.NoError(err)

	_, err = Map(sub, super, Args(1))
	require.Error(err)

	// Every unsatisfied parameter is reported at once, by name.
	var uerr *ErrParamUnsatisfied
	require.True(errors.As(err, &uerr))
	require.Len(uerr.Params, 2)
	require.Equal("alpha", uerr.Params[0].Name)
	require.Equal("beta", uerr.Params[1].Name)
	require.Contains(err.Error(), "alpha")
	require.Contains(err.Error(), "beta")
}

func TestMap_uninspectable(t *testing.T) {
	require := require.New(t)

	super, err := NewSignature(Positional("x"))
	require.NoError(err)

	// Plain function parameters carry no names.
	_, err = Map(func(x int) {}, super, Args(1))
	require.Error(err)

	var ierr *ErrUninspectable
	require.True(errors.As(err, &ierr))
}

func TestMap_nilSignature(t *testing.T) {
	require := require.New(t)

	super, err := NewSignature(Positional("x"))
	require.NoError(err)

	// A typed-nil *Signature must surface as uninspectable, not panic.
	var nilSig *Signature
	_, err = Map(nilSig, super, Args(1))
	require.Error(err)

	var ierr *ErrUninspectable
	require.True(errors.As(err, &ierr))

	_, err = Map(super, nilSig, Args(1))
	require.Error(err)
	require.True(errors.As(err, &ierr))
}

func TestMap_logger(t *testing.T) {
	require := require.New(t)

	s, err := NewSignature(Positional("x"))
	require.NoError(err)

	call, err := Map(s, s, Args(42), Logger(hclog.NewNullLogger()))
	require.NoError(err)
	require.Equal(1, call.Len())
	require.Equal(42, call.Arg(0))
}
