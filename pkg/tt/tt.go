// Package tt supports table-driven tests with little boilerplate.
//
// A test calls a function with each row's arguments and compares the return
// values; mismatches are reported as go-cmp diffs:
//
//	tt.Test(t, tt.Fn("DecodeEscapes", DecodeEscapes), tt.Table{
//		tt.Args(`\x41`).Rets([]byte("A")),
//	})
package tt

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// Table is a list of test cases.
type Table []*Case

// Case is one row of a Table, built with Args(...).Rets(...).
type Case struct {
	args []any
	rets [][]any
}

// Args starts a Case with the arguments to call the function with.
func Args(args ...any) *Case {
	return &Case{args: args}
}

// Rets adds a set of expected return values to the Case and returns it.
func (c *Case) Rets(rets ...any) *Case {
	c.rets = append(c.rets, rets)
	return c
}

// FnToTest is a named function under test.
type FnToTest struct {
	name string
	body any
}

// Fn names a function for use in error messages.
func Fn(name string, body any) *FnToTest {
	return &FnToTest{name, body}
}

// T is the subset of *testing.T used by Test.
type T interface {
	Helper()
	Errorf(format string, args ...any)
}

// Test calls fn with the arguments of every case and reports return values
// that differ from the expected ones.
func Test(t T, fn *FnToTest, tests Table) {
	t.Helper()
	for _, test := range tests {
		got := call(fn.body, test.args)
		for _, want := range test.rets {
			if reflect.DeepEqual(want, got) {
				continue
			}
			t.Errorf("%s(%s) returns (-want +got):\n%s",
				fn.name, quoteArgs(test.args), cmp.Diff(want, got))
		}
	}
}

func quoteArgs(args []any) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = fmt.Sprintf("%q", fmt.Sprint(arg))
	}
	return strings.Join(quoted, ", ")
}

func call(fn any, args []any) []any {
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			// A nil argument becomes the zero value of an interface.
			var v any
			in[i] = reflect.ValueOf(&v).Elem()
		} else {
			in[i] = reflect.ValueOf(arg)
		}
	}
	out := reflect.ValueOf(fn).Call(in)
	rets := make([]any, len(out))
	for i, v := range out {
		rets[i] = v.Interface()
	}
	return rets
}
