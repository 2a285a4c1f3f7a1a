// Copyright 2020 Aleksandr Demakin. All rights reserved.

package twos

import (
	"fmt"
	"math/big"
)

func ExampleEncode() {
	res, err := Encode(big.NewInt(-42), 8)
	if err != nil {
		panic(err)
	}
	fmt.Printf("magnitude: %s\ninverted:  %s\nplus one:  %s (%s)\n", res.Original, res.Inverted, res.Bits, res.Hex)
	fmt.Printf("range: %s to %s\n", res.Min, res.Max)

	v, err := Decode(res.Bits)
	if err != nil {
		panic(err)
	}
	fmt.Printf("decoded: %s\n", v)

	// Output:
	// magnitude: 00101010
	// inverted:  11010101
	// plus one:  11010110 (0xD6)
	// range: -128 to 127
	// decoded: -42
}
