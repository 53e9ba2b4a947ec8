package ctfmt_test

import (
	"fmt"
	"reflect"

	"ctfmt"
)

func ExampleSprintf() {
	s, _ := ctfmt.Sprintf("[{:>8.3f}|{:#x}|{:^7}]", 3.14159, 255, "mid")
	fmt.Println(s)
	// Output: [   3.142|0xff|  mid  ]
}

func ExampleCompile() {
	_, err := ctfmt.Compile("{} and {}", reflect.TypeFor[int]())
	fmt.Println(err)
	// Output:
	// using the second argument while one argument is available
	// {} and {}
	//        ~^
}
