package lessons

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"protochain/pkg/vm"
)

var expectedOutput = map[string][]string{
	"constructors": {
		"true",
		"true",
		"Person {}",
		"jsfanboy",
		"jsfanboy 2",
		"true",
		"false",
		"false",
		"calling without new throws",
	},
	"prototypes": {
		"true",
		"true",
		"true",
		"false",
		"true",
		"{ title: 'ES5 Prototypes' }",
		"true",
		"true",
		"[object Object]",
		"some custom string",
		"true",
		"[object Object]",
		"false",
	},
	"prototypes-with-constructors": {
		"jsfanboy",
		"jsfanboy 2",
		"true",
		"false",
		"[ 'Pizza', 'Burgers' ]",
		"true",
		"jsfanboy 3",
		"[Person jsfanboy 3]",
		"true",
		"true",
		"false",
		"false",
		"[ 'Pizza', 'Burgers' ]",
		"undefined",
		"jsfanboy 4",
		"true",
		"false",
		"true",
	},
	"changing-prototypes": {
		"false",
		"false",
		"Hi!",
		"Hi!",
		"true",
		"Bye, jsfanboy!",
		"write rejected",
		"add rejected",
		"jsfanboy",
		"[Person jsfanboy 2]",
		"false",
	},
	"builtins": {
		"21",
		"1 + 2 + 3 + 4 + 5 + 6 = 21",
		"false",
		"true",
		"Hello, world!",
		"true",
		"Boxed",
	},
}

func TestCatalogHasScripts(t *testing.T) {
	all := Catalog()
	require.Len(t, all, len(expectedOutput))
	for _, l := range all {
		assert.NotEmpty(t, l.Script(), "lesson %s has no script", l.ID)
		assert.NotContains(t, l.Script(), "proptotype")
	}
}

func TestLessonOutput(t *testing.T) {
	for _, l := range Catalog() {
		t.Run(l.ID, func(t *testing.T) {
			got, err := l.Output()
			require.NoError(t, err)
			assert.Equal(t, expectedOutput[l.ID], got)
		})
	}
}

func TestLessonsMatchJavaScript(t *testing.T) {
	for _, l := range Catalog() {
		t.Run(l.ID, func(t *testing.T) {
			mismatches, err := l.Verify()
			require.NoError(t, err)
			assert.Empty(t, mismatches)
		})
	}
}

func TestLessonsAreIndependent(t *testing.T) {
	l, ok := Find("builtins")
	require.True(t, ok)
	var first, second bytes.Buffer
	require.NoError(t, l.Run(&first))
	require.NoError(t, l.Run(&second))
	assert.Equal(t, first.String(), second.String())
}

func TestLessonHonoursChainDepth(t *testing.T) {
	// person -> Person.prototype -> Object.prototype is deeper than one link
	l, ok := Find("prototypes-with-constructors")
	require.True(t, ok)
	_, err := l.Output(vm.WithMaxChainDepth(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, vm.ErrCyclicPrototypeChain))
}

func TestSelect(t *testing.T) {
	all := Catalog()

	got, err := Select(all, nil, "")
	require.NoError(t, err)
	assert.Len(t, got, len(all))

	got, err = Select(all, []string{"constructors", "builtins"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"constructors", "builtins"}, ids(got))

	got, err = Select(all, nil, "^prototypes")
	require.NoError(t, err)
	assert.Equal(t, []string{"prototypes", "prototypes-with-constructors"}, ids(got))

	// titles match too
	got, err = Select(all, nil, "Built-in")
	require.NoError(t, err)
	assert.Equal(t, []string{"builtins"}, ids(got))

	got, err = Select(all, []string{"constructors"}, "^builtins$")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = Select(all, []string{"nope"}, "")
	assert.ErrorIs(t, err, ErrUnknownLesson)

	_, err = Select(all, nil, "(")
	assert.Error(t, err)
}

func TestDiffLines(t *testing.T) {
	got := diffLines([]string{"a", "b"}, []string{"a", "c", "d"})
	assert.Equal(t, []Mismatch{
		{Line: 2, Model: "b", JS: "c"},
		{Line: 3, Model: missingLine, JS: "d"},
	}, got)
	assert.Empty(t, diffLines(nil, nil))
}

func ids(ls []*Lesson) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.ID
	}
	return out
}
