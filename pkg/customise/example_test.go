package customise_test

import (
	"fmt"

	"github.com/matzehuels/iconfinder/pkg/customise"
	"github.com/matzehuels/iconfinder/pkg/iconset"
)

func ExampleCustomisations_Merge() {
	rotate, err := customise.ParseRotation("180deg")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	c := customise.Customisations{Rotate: rotate, HFlip: true}

	// arrow-right is arrow-left flipped horizontally; flipping it again
	// cancels the alias flip.
	alias := iconset.Transform{HFlip: true}
	fmt.Printf("%+v\n", c.Merge(alias))
	fmt.Println(c.Params().Encode())
	// Output:
	// {Rotate:2 HFlip:false VFlip:false}
	// flip=horizontal&rotate=180deg
}
