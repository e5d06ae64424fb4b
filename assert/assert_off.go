//go:build glw_noassert

package assert

const Enabled = false

func T(check bool, msg string, args ...any) {
}
