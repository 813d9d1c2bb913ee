package service

import (
	"math"
	"os"
)

func nan() float64 {
	return math.NaN()
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
