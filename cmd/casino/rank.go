package main

import (
	"fmt"
	"strings"

	"github.com/lox/holdemcasino/poker"
)

type RankCmd struct {
	Cards []string `arg:"" help:"Cards, e.g. 'As Kd Qh Jc Ts 2d 3c'"`
}

func (c *RankCmd) Run(_ *Globals) error {
	cards, err := poker.ParseCards(strings.Join(c.Cards, " "))
	if err != nil {
		return err
	}
	if len(cards) == 0 || len(cards) > poker.MaxHandSize {
		return fmt.Errorf("%w: need 1 to %d cards, got %d", poker.ErrHandSize, poker.MaxHandSize, len(cards))
	}
	hand := poker.NewHand(cards...)
	rank, err := poker.Evaluate(hand)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render("Hand ") + handStyle.Render(hand.String()))
	fmt.Println(labelStyle.Render("Rank: ") + fmt.Sprintf("%d (%#07x)", uint32(rank), uint32(rank)))
	fmt.Println(labelStyle.Render("Name: ") + rank.String())
	if hand.Len() > 5 {
		best, _, err := poker.BestFive(hand)
		if err != nil {
			return err
		}
		fmt.Println(labelStyle.Render("Best: ") + poker.NewHand(best...).String())
	}
	return nil
}
