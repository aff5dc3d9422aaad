// Package tt supports table-driven tests with little boilerplate.
//
// A test is a function under test and a table of cases:
//
//	tt.Test(t, tt.Fn("Slugify", lesson.Slugify), tt.Table{
//		tt.Args("03. Collection").Rets("03-collection"),
//	})
//
// Return values are compared with go-cmp unless the expected value implements
// Matcher. Errors match if errors.Is holds either way, or if they have the same
// type and message.
package tt

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// Table represents a test table.
type Table []*Case

// Case represents a test case. It is created by Args, and offers setters that
// augment and return itself, so calls can be chained like Args(...).Rets(...).
type Case struct {
	args         []any
	retsMatchers [][]any
}

// Args returns a new Case with the given arguments.
func Args(args ...any) *Case {
	return &Case{args: args}
}

// Rets adds a requirement that the return values match the given values, and
// returns the receiver.
func (c *Case) Rets(matchers ...any) *Case {
	c.retsMatchers = append(c.retsMatchers, matchers)
	return c
}

// FnToTest describes a function to test.
type FnToTest struct {
	name    string
	body    any
	argsFmt string
	retsFmt string
}

// Fn makes a new FnToTest with the given function name and body.
func Fn(name string, body any) *FnToTest {
	return &FnToTest{name: name, body: body}
}

// ArgsFmt sets the format used for arguments in error messages.
func (fn *FnToTest) ArgsFmt(s string) *FnToTest {
	fn.argsFmt = s
	return fn
}

// RetsFmt sets the format used for return values in error messages.
func (fn *FnToTest) RetsFmt(s string) *FnToTest {
	fn.retsFmt = s
	return fn
}

// T is the subset of testing.TB used by Test.
type T interface {
	Helper()
	Errorf(format string, args ...any)
}

// Test runs every case of a table against a function.
func Test(t T, fn *FnToTest, tests Table) {
	t.Helper()
	for _, test := range tests {
		rets := call(fn.body, test.args)
		for _, want := range test.retsMatchers {
			if match(want, rets) {
				continue
			}
			args := format(fn.argsFmt, test.args, sprintArgs)
			if fn.retsFmt != "" {
				t.Errorf("%s(%s) returns %s, want %s", fn.name, args,
					fmt.Sprintf(fn.retsFmt, rets...), fmt.Sprintf(fn.retsFmt, want...))
				continue
			}
			t.Errorf("%s(%s) returns (-want +got):\n%s", fn.name, args,
				cmp.Diff(describe(want), describe(rets)))
		}
	}
}

// RetValue is the type of values passed to Matcher.Match. It exists so that
// Matcher cannot be implemented by accident.
type RetValue any

// Matcher decides whether a return value matches.
type Matcher interface {
	Match(RetValue) bool
}

// Any matches any value.
var Any Matcher = anyMatcher{}

type anyMatcher struct{}

func (anyMatcher) Match(RetValue) bool { return true }

// ErrorIs returns a Matcher that matches errors for which errors.Is(err,
// target) holds, via the Is method of the error type if present.
func ErrorIs(target error) Matcher { return errorIsMatcher{target} }

type errorIsMatcher struct{ target error }

func (m errorIsMatcher) Match(v RetValue) bool {
	err, ok := v.(error)
	if !ok {
		return m.target == nil && v == nil
	}
	return errors.Is(err, m.target)
}

func (m errorIsMatcher) String() string { return fmt.Sprintf("ErrorIs(%v)", m.target) }

func match(matchers, actual []any) bool {
	if len(matchers) != len(actual) {
		return false
	}
	for i, m := range matchers {
		if m, ok := m.(Matcher); ok {
			if !m.Match(actual[i]) {
				return false
			}
			continue
		}
		if !cmp.Equal(m, actual[i], equateErrors) {
			return false
		}
	}
	return true
}

// Errors are equal if either wraps the other, or if they have the same type
// and message. The latter makes it possible to write expected values like
// &SomeError{Field: "x"} in a table.
var equateErrors = cmp.FilterValues(
	func(x, y any) bool {
		_, ok1 := x.(error)
		_, ok2 := y.(error)
		return ok1 && ok2
	},
	cmp.Comparer(func(x, y any) bool {
		xe, ye := x.(error), y.(error)
		if errors.Is(xe, ye) || errors.Is(ye, xe) {
			return true
		}
		return reflect.TypeOf(xe) == reflect.TypeOf(ye) && xe.Error() == ye.Error()
	}))

func format(f string, vs []any, dflt func([]any) string) string {
	if f == "" {
		return dflt(vs)
	}
	return fmt.Sprintf(f, vs...)
}

func sprintArgs(args []any) string {
	return sprintCommaDelimited(args)
}

// describe turns values into strings so that cmp.Diff works on values with
// unexported fields and on Matchers.
func describe(vs []any) []string {
	ds := make([]string, len(vs))
	for i, v := range vs {
		if s, ok := v.(fmt.Stringer); ok {
			ds[i] = s.String()
		} else if err, ok := v.(error); ok {
			ds[i] = "error: " + err.Error()
		} else {
			ds[i] = fmt.Sprintf("%#v", v)
		}
	}
	return ds
}

func sprintCommaDelimited(vs []any) string {
	var sb strings.Builder
	for i, v := range vs {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%#v", v)
	}
	return sb.String()
}

func call(fn any, args []any) []any {
	fnValue := reflect.ValueOf(fn)
	fnType := fnValue.Type()
	argsReflect := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			// A bare nil has no type; use the zero value of the parameter.
			argsReflect[i] = reflect.Zero(paramType(fnType, i))
		} else {
			argsReflect[i] = reflect.ValueOf(arg)
		}
	}
	retsReflect := fnValue.Call(argsReflect)
	rets := make([]any, len(retsReflect))
	for i, r := range retsReflect {
		rets[i] = r.Interface()
	}
	return rets
}

func paramType(fnType reflect.Type, i int) reflect.Type {
	if fnType.IsVariadic() && i >= fnType.NumIn()-1 {
		return fnType.In(fnType.NumIn() - 1).Elem()
	}
	return fnType.In(i)
}
