// pkg/hexmap/utils.go
package hexmap

// Вспомогательные функции

// mod — остаток от деления, всегда неотрицательный
func mod(a, n int) int {
	return ((a % n) + n) % n
}
