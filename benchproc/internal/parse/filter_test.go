// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import "testing"

func TestParseFilter(t *testing.T) {
	check := func(query, want string) {
		t.Helper()
		q, err := ParseFilter(query)
		if err != nil {
			t.Errorf("%s: unexpected error %s", query, err)
			return
		}
		got := q.String()
		if got != want {
			t.Errorf("%s: got %s, want %s", query, got, want)
		}
	}
	checkErr := func(query, error string, pos int) {
		t.Helper()
		_, err := ParseFilter(query)
		if se, _ := err.(*SyntaxError); se == nil || se.Msg != error || se.Off != pos {
			t.Errorf("%s: want error %s at %d; got %s", query, error, pos, err)
		}
	}

	check(`*`, `*`)
	check(`a:b`, `a:b`)
	check(`a:b c:d`, `(a:b AND c:d)`)
	check(`a:b AND c:d`, `(a:b AND c:d)`)
	check(`a:b OR c:d -e:f`, `(a:b OR (c:d AND -e:f))`)
	check(`-(a:b)`, `-a:b`)
	check(`a:(b c)`, `(a:b OR a:c)`)
	check(`a:(b)`, `a:b`)
	check(`model:/^cnn/`, `model:/^cnn/`)
	check(`label:a\/b`, `label:a\/b`)
	check(`label:/a\/b/`, `label:/a/b/`)
	check(`"a b":"c d"`, `"a b":"c d"`)
	check(`model:x.pt buffer:(512 2048)`, `(model:x.pt AND (buffer:512 OR buffer:2048))`)

	checkErr(``, "expected key:value or subexpression", 0)
	checkErr(`a`, "expected key:value", 0)
	checkErr(`(a:b`, `missing ")"`, 4)
	checkErr(`a:b)`, `unexpected ")"`, 3)
	checkErr(`AND a:b`, `unexpected "AND"`, 0)
	checkErr(`a:/x`, `missing close "/"`, 2)
	checkErr(`a:/[/`, "missing closing ]: `[`", 3)
	checkErr(`model:/(/`, "missing closing ): `(`", 7)
	checkErr(`buffer:512 model:(x /a**/)`, "invalid nested repetition operator: `**`", 21)
	checkErr(`a:()`, "nothing to match", 3)
	checkErr(`a:"b`, "bad quoted string", 2)
}

func TestSyntaxErrorMessage(t *testing.T) {
	_, err := ParseFilter("a:b)")
	want := "syntax error: unexpected \")\"\n\ta:b)\n\t   ^"
	if err == nil || err.Error() != want {
		t.Errorf("got %q, want %q", err, want)
	}
}

func TestFilterMatch(t *testing.T) {
	q, err := ParseFilter("model:/onnx$/")
	if err != nil {
		t.Fatal(err)
	}
	m := q.(*FilterMatch)
	if !m.Match("model_0.onnx") || m.Match("model.onnx.bak") {
		t.Errorf("regexp match failed")
	}
	q, _ = ParseFilter("backend:onnx")
	m = q.(*FilterMatch)
	if !m.Match("onnx") || m.Match("onnxx") {
		t.Errorf("literal match failed")
	}
}
