package gics_test

import (
	"fmt"

	"gics/pkg/gics"
)

func ExampleNew() {
	g, err := gics.New("45103010")
	if err != nil {
		panic(err)
	}
	for _, level := range g.Path() {
		fmt.Println(level.Code, level.Name)
	}
	// Output:
	// 45 Information Technology
	// 4510 Software & Services
	// 451030 Software
	// 45103010 Application Software
}

func ExampleGICS_Children() {
	g, _ := gics.New("1010")
	for _, child := range g.Children() {
		fmt.Println(child.Code, child.Name)
	}
	// Output:
	// 101010 Energy Equipment & Services
	// 101020 Oil, Gas & Consumable Fuels
}

func ExampleNewWithVersion() {
	old, _ := gics.NewWithVersion("4040", "20140228")
	current, _ := gics.NewWithVersion("4040", "20160901")
	group, _ := old.IndustryGroup()
	fmt.Println(group.Name, current.IsValid())
	// Output: Real Estate false
}
