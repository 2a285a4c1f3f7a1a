// Copyright 2020 Aleksandr Demakin. All rights reserved.

package colorcode

import (
	"fmt"
)

func ExampleParseHex() {
	c, err := ParseHex("#3b82f6")
	if err != nil {
		panic(err)
	}
	fmt.Println(c.Hex())
	fmt.Println(c)
	fmt.Println(c.HSL())
	fmt.Println(c.Binary())

	// Output:
	// #3B82F6
	// rgb(59, 130, 246)
	// hsl(217, 91%, 60%)
	// 00111011 10000010 11110110
}
