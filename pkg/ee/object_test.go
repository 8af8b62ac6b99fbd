package ee

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberAdd_BuildsInvocation(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)

	// Act
	sum, err := Must(reg.NewNumber(1)).Add(2)

	// Assert
	require.NoError(t, err)
	node := sum.Node()
	assert.Equal(t, TypeNumber, node.TypeName())
	assert.Same(t, Must(reg.Lookup("Number.add")), node.Func())

	left, ok := node.Arg("left")
	require.True(t, ok)
	assert.True(t, left.(*ComputedObject).Equal(Must(reg.NewNumber(1))))
	lit, isLit := left.(*ComputedObject).Literal()
	assert.True(t, isLit)
	assert.Equal(t, int64(1), lit)

	right, _ := node.Arg("right")
	assert.True(t, right.(*ComputedObject).Equal(Must(reg.NewNumber(2))))
}

func TestEquality_StructuralClosure(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	build := func(x any) Number {
		s := Must(Must(reg.NewString("abc")).Cat("def"))
		n := Must(s.Length())
		return Must(Must(n.Multiply(x)).Add(1.5))
	}

	a, b := build(2), build(2.0)
	c := build(3)

	assert.NotSame(t, a.Node(), b.Node())
	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
	assert.Equal(t, a.Hash(), b.Hash())

	assert.False(t, a.Equal(c))
	assert.NotEqual(t, a.Hash(), c.Hash())
	assert.False(t, a.Equal(nil))
}

func TestEquality_Literals(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)

	assert.True(t, Must(reg.NewNumber(1)).Equal(Must(reg.NewNumber(1.0))))
	assert.True(t, Must(reg.NewNumber(uint8(7))).Equal(Must(reg.NewNumber(int64(7)))))
	assert.False(t, Must(reg.NewNumber(1)).Equal(Must(reg.NewNumber(1.5))))
	assert.True(t, Must(reg.NewList([]int{1, 2})).Equal(Must(reg.NewList([]any{1.0, int32(2)}))))
	assert.True(t, Must(reg.NewDictionary(map[string]int{"a": 1})).Equal(Must(reg.NewDictionary(map[string]any{"a": 1}))))
}

func TestEquality_IgnoresDeclaredType(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	sum := Must(Must(reg.NewNumber(1)).Add(2))

	// Act
	list := Must(reg.NewList(sum))

	// Assert
	assert.NotEqual(t, sum.TypeName(), list.TypeName())
	assert.True(t, sum.Equal(list))
	assert.Equal(t, sum.Hash(), list.Hash())
}

func TestCast_PreservesIdentity(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	n := Must(reg.NewNumber(1))
	sum := Must(n.Add(2))
	cat := Must(Must(reg.NewString("a")).Cat("b"))
	date := Must(reg.NewDate(0))
	dict := Must(reg.NewDictionary(map[string]any{"k": 1}))
	list := Must(reg.NewList([]int{1}))

	assert.Same(t, n.Node(), Must(reg.NewNumber(n)).Node())
	assert.Same(t, sum.Node(), Must(reg.NewNumber(sum)).Node())
	assert.Same(t, cat.Node(), Must(reg.NewString(cat)).Node())
	assert.Same(t, date.Node(), Must(reg.NewDate(date)).Node())
	assert.Same(t, dict.Node(), Must(reg.NewDictionary(dict)).Node())
	assert.Same(t, list.Node(), Must(reg.NewList(list)).Node())
}

func TestCast_OtherTypes(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	dict := Must(reg.NewDictionary(map[string]any{"items": []int{1, 2}}))
	items := Must(dict.Get("items"))
	require.Equal(t, "Object", items.Node().TypeName())

	// Types without a constructor operation are cast: same content, new
	// declared type.
	list := Must(reg.NewList(items))
	assert.NotSame(t, items.Node(), list.Node())
	assert.Equal(t, TypeList, list.TypeName())
	assert.Same(t, items.Node().Func(), list.Func())
	assert.True(t, list.Equal(items))

	// Types with one invoke it.
	s := Must(reg.NewString(items))
	assert.Equal(t, "String", s.Func().Signature().Name)
	input, _ := s.Arg("input")
	assert.Same(t, items.Node(), input)

	d := Must(reg.NewDictionary(items))
	assert.Equal(t, "Dictionary", d.Func().Signature().Name)

	date := Must(reg.NewDate(items))
	value, _ := date.Arg("value")
	assert.Same(t, items.Node(), value)
}

func TestConstructors_RejectInvalidInput(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)

	testCases := []struct {
		name string
		fn   func() error
	}{
		{"number from string", func() error { _, err := reg.NewNumber("1"); return err }},
		{"string from number", func() error { _, err := reg.NewString(5); return err }},
		{"list from map", func() error { _, err := reg.NewList(map[string]any{}); return err }},
		{"list of channels", func() error { _, err := reg.NewList([]any{make(chan int)}); return err }},
		{"dictionary from slice", func() error { _, err := reg.NewDictionary([]int{1}); return err }},
		{"dictionary with int keys", func() error { _, err := reg.NewDictionary(map[int]int{1: 1}); return err }},
		{"date from bool", func() error { _, err := reg.NewDate(true); return err }},
		{"join from literal", func() error { _, err := reg.NewJoin("inner"); return err }},
		{"nil wrapper", func() error { _, err := reg.NewString(Number{}); return err }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.fn()
			var typeErr *ArgumentTypeError
			require.True(t, errors.As(err, &typeErr), "got %v", err)
		})
	}
}

func TestNewString_ErrorNamesValue(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	_, err := reg.NewString(5)
	assert.EqualError(t, err, "String: invalid argument, expected String, got int(5)")
}

func TestNewDate(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)

	fromTime := Must(reg.NewDate(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Date", fromTime.Func().Signature().Name)
	value, _ := fromTime.Arg("value")
	assert.Equal(t, int64(1577836800000), value)
	assert.True(t, fromTime.Equal(Must(reg.NewDate(1577836800000))))

	withZone := Must(reg.NewDate("2020-01-01", "America/Los_Angeles"))
	tz, ok := withZone.Arg("timeZone")
	require.True(t, ok)
	assert.True(t, tz.(*ComputedObject).Equal(Must(reg.NewString("America/Los_Angeles"))))

	// A Date with a new zone is wrapped again.
	rezoned := Must(reg.NewDate(fromTime, "UTC"))
	inner, _ := rezoned.Arg("value")
	assert.Same(t, fromTime.Node(), inner)

	_, err := reg.NewDate(0, "UTC", "extra")
	var tooMany *TooManyArgumentsError
	assert.True(t, errors.As(err, &tooMany))
}

func TestConfusionMatrix(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)

	m := Must(reg.NewConfusionMatrix([][]int{{10, 2}, {3, 15}}, []int{0, 1}))
	assert.Equal(t, "ConfusionMatrix", m.Func().Signature().Name)
	order, ok := m.Arg("order")
	require.True(t, ok)
	assert.Equal(t, TypeList, order.(*ComputedObject).TypeName())

	acc := Must(m.Accuracy())
	assert.Equal(t, "ConfusionMatrix.accuracy", acc.Func().Signature().Name)
	kappa := Must(m.Kappa())
	assert.Equal(t, TypeNumber, kappa.TypeName())

	assert.Same(t, m.Node(), Must(reg.NewConfusionMatrix(m, nil)).Node())

	noOrder := Must(reg.NewConfusionMatrix([][]int{{1}}, nil))
	_, ok = noOrder.Arg("order")
	assert.False(t, ok)
}

func TestJoin(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	inner, err := reg.Call("Join.inner", "left", "right")
	require.NoError(t, err)

	join, ok := inner.(Join)
	require.True(t, ok, "Join.inner should return a Join, got %T", inner)
	assert.Same(t, join.Node(), Must(reg.NewJoin(join)).Node())

	primary := Must(reg.Call("Collection.loadTable", "a"))
	secondary := Must(reg.Call("Collection.loadTable", "b"))
	filter := Must(reg.Apply("Filter.equals", map[string]any{"leftField": "id", "rightField": "id"}))

	joined, err := join.Apply(primary, secondary, filter)
	require.NoError(t, err)
	assert.Equal(t, "FeatureCollection", joined.Node().TypeName())

	// FeatureCollection inherits Collection methods.
	size := Must(joined.Node().Call("size"))
	assert.IsType(t, Number{}, size)
}

func TestTypedResults(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	dict := Must(reg.NewDictionary(map[string]any{"a": 1}))

	keys, err := dict.Keys()
	require.NoError(t, err)
	assert.Equal(t, TypeList, keys.TypeName(), "List<String> is a List")

	size := Must(keys.Size())
	assert.Equal(t, TypeNumber, size.TypeName(), "Integer is a Number")

	set := Must(dict.Set("b", 2))
	assert.IsType(t, Dictionary{}, Object(set))

	millis := Must(Must(Must(reg.NewDate(0)).Advance(1, "day")).Millis())
	assert.Equal(t, "Date.millis", millis.Func().Signature().Name)
}

func TestCallNamed_BindsSelfFirst(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	s := Must(reg.NewString("foo"))

	named, err := s.CallNamed("cat", map[string]any{"string2": "bar"})
	require.NoError(t, err)
	positional := Must(s.Cat("bar"))
	assert.True(t, positional.Equal(named))
}

func TestString(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	sum := Must(Must(reg.NewNumber(1)).Add(2))
	assert.Equal(t, `ee.Number({"algorithm":"Number.add","left":1,"right":2})`, sum.String())
}
