package stego_test

import (
	"fmt"

	stego "github.com/yyyoichi/lsb_zero"
	"github.com/yyyoichi/lsb_zero/mark"
)

func Example_stego() {
	// 2000 byte carrier starting with the PNG signature
	carrier := make([]byte, 2000)
	copy(carrier, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A})

	kind := stego.Detect(carrier)
	fmt.Printf("Kind: %s, offset: %d\n", kind, stego.HeaderOffset(kind))

	hidden, err := stego.Hide(carrier, []byte("Hi"))
	if err != nil {
		fmt.Printf("Error hiding message: %v\n", err)
		return
	}

	// the length is not stored in the carrier
	message, err := stego.Find(hidden, 2)
	if err != nil {
		fmt.Printf("Error finding message: %v\n", err)
		return
	}
	fmt.Println(string(message))

	_, err = stego.Hide(carrier, make([]byte, 250))
	fmt.Println(err)

	// Output:
	// Kind: PNG, offset: 8
	// Hi
	// message too large for carrier: 250 bytes, maximum 249 bytes
}

func ExampleWithLengthHeader() {
	carrier := make([]byte, 4096)
	copy(carrier, []byte{0x42, 0x4D})

	s, err := stego.New(
		stego.WithCodec(mark.New(mark.WithGolay(mark.DefaultShuffleSeed))),
		stego.WithLengthHeader(),
	)
	if err != nil {
		fmt.Printf("Error creating stego: %v\n", err)
		return
	}

	hidden, err := s.Hide(carrier, []byte("Test-Mark"))
	if err != nil {
		fmt.Printf("Error hiding message: %v\n", err)
		return
	}

	// no length needed with the header
	message, err := s.Find(hidden, 0)
	if err != nil {
		fmt.Printf("Error finding message: %v\n", err)
		return
	}
	fmt.Println(string(message))

	// Output:
	// Test-Mark
}
