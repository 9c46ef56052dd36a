//go:build !linux && !darwin

package supervisor

// probeCwd has no OS facility here; callers fall back to the directory
// recorded at spawn time.
func probeCwd(pid int) (string, bool) {
	return "", false
}
