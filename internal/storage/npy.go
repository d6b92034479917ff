package storage

import (
	"errors"
	"fmt"
	"os"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

var ErrBadNPY = errors.New("storage: malformed npy file")

// WriteNPY writes m as a row-major float64 array loadable with numpy.load.
func WriteNPY(path string, m mat.Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := npyio.Write(f, m); err != nil {
		return fmt.Errorf("storage: write npy: %w", err)
	}
	return f.Close()
}

// ReadNPY reads a float64 array of any shape, flattened in row-major order.
func ReadNPY(path string) ([]int, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBadNPY, err)
	}

	shape := r.Header.Descr.Shape
	n := 1
	for _, d := range shape {
		n *= d
	}
	data := make([]float64, n)
	if err := r.Read(&data); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBadNPY, err)
	}
	return shape, data, nil
}
