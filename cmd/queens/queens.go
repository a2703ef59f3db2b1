package queens

import (
	"fmt"
)

func printPlacements(size int, placements [][]int, all bool) {
	if len(placements) == 0 {
		fmt.Println("no solution found")
		return
	}
	if all {
		fmt.Printf("found %d placements\n", len(placements))
	}
	for i, placement := range placements {
		if i > 0 {
			fmt.Printf("\n")
		}
		printBoard(size, placement)
	}
}

func printBoard(size int, placement []int) {
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if placement[row] == col {
				fmt.Printf("Q")
			} else {
				fmt.Printf(".")
			}
			if col != size-1 {
				fmt.Printf(" ")
			}
		}
		fmt.Printf("\n")
	}
}
