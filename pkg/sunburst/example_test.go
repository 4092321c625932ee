package sunburst_test

import (
	"fmt"
	"math"

	"github.com/matzehuels/sunburst/pkg/sunburst"
	"github.com/matzehuels/sunburst/pkg/tree"
)

func ExampleAllocate() {
	// Three root children weighted 1:1:2 split the circle into quarters
	// and a half.
	root := &tree.Node{Children: []*tree.Node{
		{Leaves: 1},
		{Leaves: 1},
		{Leaves: 2},
	}}

	d, err := sunburst.Allocate(root, sunburst.Config{})
	if err != nil {
		panic(err)
	}

	for _, s := range d.Sectors {
		fmt.Printf("%s %s width=%.2fpi\n", s.ID, s.Kind, s.Width()/math.Pi)
	}
	fmt.Println("bound:", d.Bound)
	// Output:
	// 0 disk width=0.00pi
	// 0:0 sector width=0.50pi
	// 0:1 sector width=0.50pi
	// 0:2 sector width=1.00pi
	// bound: 110
}

func ExampleConfig_Bound() {
	// Two levels of depth below the root extend the frame by two ring
	// steps past the inner disk.
	root := &tree.Node{Children: []*tree.Node{
		{Children: []*tree.Node{{}}},
	}}

	bound, err := sunburst.Config{InitialRadius: 100, LevelStep: 10}.Bound(root)
	if err != nil {
		panic(err)
	}
	fmt.Println(bound)
	// Output:
	// 120
}
