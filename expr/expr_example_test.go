// Copyright 2020 Aleksandr Demakin. All rights reserved.

package expr

import (
	"fmt"
	"math/big"
)

func ExampleEvaluate() {
	vars := map[string]*big.Int{
		"A": big.NewInt(0xAB),
		"B": big.NewInt(0x0F),
	}
	for _, s := range []string{"A AND B", "(A AND 0xF0) SHR 4", "A XOR B OR 1 SHL 8", "A; ls"} {
		v, err := Evaluate(s, vars)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Printf("%s = %d\n", s, v)
	}

	// Output:
	// A AND B = 11
	// (A AND 0xF0) SHR 4 = 10
	// A XOR B OR 1 SHL 8 = 420
	// invalid expression: disallowed symbol ';' at pos 5
}
