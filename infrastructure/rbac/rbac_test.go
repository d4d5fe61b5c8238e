package rbac

import "testing"

func TestMatchPathWildcardSegments(t *testing.T) {
	cases := []struct {
		pattern string
		path    string
		ok      bool
	}{
		{pattern: "/console/configurations/*/serials", path: "/console/configurations/1/serials", ok: true},
		{pattern: "/console/configurations/*/generate", path: "/console/configurations/10/generate", ok: true},
		{pattern: "/console/configurations/*/labels/*", path: "/console/configurations/1/labels/2.pdf", ok: true},
		{pattern: "/console/admin/users", path: "/console/admin/users", ok: true},
		{pattern: "/console/admin/users", path: "/console/admin/users/1", ok: false},
		{pattern: "/console/configurations/*/serials", path: "/console/configurations/1/generate", ok: false},
	}

	for _, tc := range cases {
		if got := matchPath(tc.pattern, tc.path); got != tc.ok {
			t.Fatalf("pattern=%s path=%s expected=%v got=%v", tc.pattern, tc.path, tc.ok, got)
		}
	}
}
