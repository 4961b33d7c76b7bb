package main

import (
	"fmt"

	"github.com/limpo1989/vector"
)

type point struct {
	x, y int
}

func main() {
	vec := vector.New[point]()
	defer vec.Release()

	// Append grows the storage by doubling it
	for i := 0; i < 5; i++ {
		if err := vec.Append(point{x: i, y: i * i}); err != nil {
			panic(err)
		}
	}
	fmt.Println("print vec:", vec, "len:", vec.Len(), "cap:", vec.Cap())

	// Checked access
	if _, err := vec.At(10); err != nil {
		fmt.Println("print err:", err)
	}

	// Copies are independent
	cp, err := vec.Clone()
	if err != nil {
		panic(err)
	}
	cp.PopBack()
	if err = cp.ShrinkToFit(); err != nil {
		panic(err)
	}
	fmt.Println("print copy:", cp, "cap:", cp.Cap(), "equal:", vector.Equal(vec, cp))

	// Resize with a fill value
	if err = cp.ResizeFill(6, point{x: -1, y: -1}); err != nil {
		panic(err)
	}
	fmt.Println("print resized:", cp)
}
