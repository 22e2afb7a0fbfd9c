package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case GameView:
		o.printGameView(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// Ship response type
type Ship struct {
	Name   string   `json:"name"`
	Length int      `json:"length"`
	Cells  []string `json:"cells"`
}

// GameView response type (matches API)
type GameView struct {
	GameID int64  `json:"game_id"`
	Room   string `json:"room"`
	Status string `json:"status"`
	Turn   string `json:"turn"`
	Winner string `json:"winner,omitempty"`

	You           string `json:"you"`
	OpponentReady bool   `json:"opponent_ready"`

	Ships  []Ship   `json:"ships,omitempty"`
	Hits   []string `json:"hits"`
	Misses []string `json:"misses"`

	TakenHits   []string `json:"taken_hits"`
	TakenMisses []string `json:"taken_misses"`

	CreatedAt  time.Time `json:"created_at"`
	LastMoveAt time.Time `json:"last_move_at,omitempty"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printGameView(g GameView) {
	fmt.Printf("Game: %d\n", g.GameID)
	fmt.Printf("Room: %s\n", g.Room)
	fmt.Printf("Status: %s\n", g.Status)
	fmt.Printf("You are: %s\n", g.You)
	if g.Winner != "" {
		fmt.Printf("Winner: %s\n", g.Winner)
	} else if g.Turn == g.You {
		fmt.Println("Turn: yours")
	} else {
		fmt.Println("Turn: opponent's")
	}

	if g.OpponentReady {
		fmt.Println("Opponent: ships placed")
	} else {
		fmt.Println("Opponent: placing ships")
	}

	if len(g.Ships) > 0 {
		fmt.Println("\nYour Board:")
		o.printGrid(shipCells(g.Ships), g.TakenHits, g.TakenMisses)
	}

	fmt.Println("\nYour Shots:")
	o.printGrid(nil, g.Hits, g.Misses)

	if !g.LastMoveAt.IsZero() {
		fmt.Printf("\nLast move: %s\n", g.LastMoveAt.Format(time.RFC3339))
	}
}

func shipCells(ships []Ship) map[string]bool {
	cells := make(map[string]bool)
	for _, ship := range ships {
		for _, c := range ship.Cells {
			cells[c] = true
		}
	}
	return cells
}

// printGrid draws a 10x10 grid. Hits render as 'x', misses as 'o', ship
// cells as '#', empty water as '.'.
func (o *Output) printGrid(ships map[string]bool, hits, misses []string) {
	hitSet := make(map[string]bool, len(hits))
	for _, t := range hits {
		hitSet[t] = true
	}
	missSet := make(map[string]bool, len(misses))
	for _, t := range misses {
		missSet[t] = true
	}

	fmt.Print("    ")
	for col := 'A'; col <= 'J'; col++ {
		fmt.Printf(" %c ", col)
	}
	fmt.Println()

	for row := 1; row <= 10; row++ {
		fmt.Printf(" %2d ", row)
		for col := 'A'; col <= 'J'; col++ {
			cell := fmt.Sprintf("%c%d", col, row)
			switch {
			case hitSet[cell]:
				fmt.Print(" x ")
			case missSet[cell]:
				fmt.Print(" o ")
			case ships[cell]:
				fmt.Print(" # ")
			default:
				fmt.Print(" . ")
			}
		}
		fmt.Println()
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
