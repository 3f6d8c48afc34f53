package bot

import (
	"fmt"
	"log"
	"sort"
	"sync"

	gonnx "github.com/advancedclimatesystems/gonnx"
	"github.com/freeeve/quiet-conquest/internal/bot/neural"
	"github.com/freeeve/quiet-conquest/pkg/conquest"
	"gorgonia.org/tensor"
)

// newGonnxOrFallback attempts to create a GonnxStrategy. If loading fails,
// it falls back to TacticalStrategy.
func newGonnxOrFallback() Strategy {
	s, err := newGonnxStrategy()
	if err != nil {
		log.Printf("bot: neural requested but model load failed: %v; falling back to hard", err)
		return &TacticalStrategy{}
	}
	return s
}

// GonnxStrategy uses gonnx (pure Go ONNX runtime) to run neural network
// inference for order generation. It loads policy and value ONNX models and
// decodes policy logits into affordable, legal orders.
type GonnxStrategy struct {
	policy *gonnx.Model
	value  *gonnx.Model
	mu     sync.Mutex
}

// newGonnxStrategy loads the models from GonnxModelPath. The policy model is
// required; the value model only adds stance control.
func newGonnxStrategy() (*GonnxStrategy, error) {
	path := GonnxModelPath
	if path == "" {
		path = "models"
	}

	policy, err := gonnx.NewModelFromFile(path + "/policy.onnx")
	if err != nil {
		return nil, err
	}

	valuePath := path + "/value.onnx"
	value, err := gonnx.NewModelFromFile(valuePath)
	if err != nil {
		log.Printf("bot/gonnx: value model not found at %s: %v (stance control disabled)", valuePath, err)
	}

	return &GonnxStrategy{policy: policy, value: value}, nil
}

func (s *GonnxStrategy) Name() string { return "neural" }

// Orders runs the policy network over the player's view and decodes the
// logits into orders. Any inference failure degrades to the tactical
// heuristic for this turn.
func (s *GonnxStrategy) Orders(v *conquest.PlayerView, p conquest.Player) []conquest.Order {
	logits := s.runPolicy(v, p)
	if logits == nil {
		log.Printf("bot/gonnx: policy inference failed for %s, falling back to hard", p)
		return TacticalStrategy{}.Orders(v, p)
	}
	return s.decodeOrders(logits, v, p)
}

// decodeOrders turns flat from->to logits into orders. The network proposes
// lanes; force sizing stays heuristic so every emitted order is affordable
// and worth sending.
func (s *GonnxStrategy) decodeOrders(logits []float32, v *conquest.PlayerView, p conquest.Player) []conquest.Order {
	if len(logits) < neural.PolicySize {
		log.Printf("bot/gonnx: short policy output: %d", len(logits))
		return TacticalStrategy{}.Orders(v, p)
	}

	maxOrders := s.orderBudget(v, p)
	budget := spareShips(v, p)

	idx := make([]int, neural.PolicySize)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return logits[idx[a]] > logits[idx[b]] })

	taken := make(map[string]bool)
	var orders []conquest.Order
	for _, k := range idx {
		if len(orders) >= maxOrders {
			break
		}
		fi, ti := k/neural.NumSystems, k%neural.NumSystems
		if fi == ti {
			continue
		}
		from := v.System(neural.SystemID(fi))
		to := v.System(neural.SystemID(ti))
		if from == nil || to == nil || from.Owner != p || to.Owner == p || taken[to.ID] {
			continue
		}
		ships := 1
		if to.Known {
			if to.Owner == conquest.Neutral {
				ships = shipsToTake(to.Garrison, to.Resource)
			} else {
				ships = shipsToTake(to.Theirs, to.Resource)
			}
		}
		if ships > budget[from.ID] {
			continue
		}
		budget[from.ID] -= ships
		taken[to.ID] = true
		orders = append(orders, conquest.Order{From: from.ID, To: to.ID, Ships: ships, Rationale: "policy"})
	}
	return orders
}

// orderBudget sets how many lanes to open this turn from the value head's
// read of the position. Without a value model it stays on the middle stance.
func (s *GonnxStrategy) orderBudget(v *conquest.PlayerView, p conquest.Player) int {
	if s.value == nil {
		return 3
	}
	preds, err := s.RunValueNetwork(v, p)
	if err != nil {
		log.Printf("bot/gonnx: value network error: %v", err)
		return 3
	}
	score := neural.ValueToScalar(preds)
	switch {
	case score < neural.DefensiveScore:
		return 1
	case score > neural.WinningScore:
		return 5
	default:
		return 3
	}
}

// runPolicy encodes the view and runs the policy model, returning flat logits.
func (s *GonnxStrategy) runPolicy(v *conquest.PlayerView, p conquest.Player) []float32 {
	boardData := neural.EncodeView(v)
	distData := neural.BuildDistanceMatrix(v)
	playerIdx := []int64{int64(neural.PlayerIndex(p))}

	boardTensor := tensor.New(
		tensor.WithShape(1, neural.NumSystems, neural.NumFeatures),
		tensor.Of(tensor.Float32),
		tensor.WithBacking(boardData),
	)
	distTensor := tensor.New(
		tensor.WithShape(neural.NumSystems, neural.NumSystems),
		tensor.Of(tensor.Float32),
		tensor.WithBacking(distData),
	)
	playerTensor := tensor.New(
		tensor.WithShape(1),
		tensor.Of(tensor.Int64),
		tensor.WithBacking(playerIdx),
	)

	inputs := gonnx.Tensors{
		"board":          boardTensor,
		"dist":           distTensor,
		"player_indices": playerTensor,
	}

	s.mu.Lock()
	outputs, err := s.policy.Run(inputs)
	s.mu.Unlock()
	if err != nil {
		log.Printf("bot/gonnx: policy run error: %v", err)
		return nil
	}

	out, ok := outputs["order_logits"]
	if !ok {
		log.Printf("bot/gonnx: output 'order_logits' not found")
		return nil
	}

	switch d := out.Data().(type) {
	case []float32:
		return d
	case []float64:
		f32 := make([]float32, len(d))
		for i, val := range d {
			f32[i] = float32(val)
		}
		return f32
	default:
		log.Printf("bot/gonnx: unexpected output type %T", out.Data())
		return nil
	}
}

// RunValueNetwork runs the value model over the view, returning
// [win_prob, draw_prob, loss_prob] for the viewing player.
func (s *GonnxStrategy) RunValueNetwork(v *conquest.PlayerView, p conquest.Player) ([3]float32, error) {
	if s.value == nil {
		return [3]float32{}, fmt.Errorf("value model not loaded")
	}

	boardData := neural.EncodeView(v)
	distData := neural.BuildDistanceMatrix(v)
	playerIdx := []int64{int64(neural.PlayerIndex(p))}

	boardTensor := tensor.New(
		tensor.WithShape(1, neural.NumSystems, neural.NumFeatures),
		tensor.Of(tensor.Float32),
		tensor.WithBacking(boardData),
	)
	distTensor := tensor.New(
		tensor.WithShape(neural.NumSystems, neural.NumSystems),
		tensor.Of(tensor.Float32),
		tensor.WithBacking(distData),
	)
	playerTensor := tensor.New(
		tensor.WithShape(1),
		tensor.Of(tensor.Int64),
		tensor.WithBacking(playerIdx),
	)

	inputs := gonnx.Tensors{
		"board":          boardTensor,
		"dist":           distTensor,
		"player_indices": playerTensor,
	}

	s.mu.Lock()
	outputs, err := s.value.Run(inputs)
	s.mu.Unlock()
	if err != nil {
		return [3]float32{}, fmt.Errorf("value run error: %w", err)
	}

	out, ok := outputs["value_preds"]
	if !ok {
		// Try the first output key if the name doesn't match.
		for _, o := range outputs {
			out = o
			break
		}
	}
	if out == nil {
		return [3]float32{}, fmt.Errorf("no output tensor from value model")
	}

	var result [3]float32
	switch d := out.Data().(type) {
	case []float32:
		if len(d) < 3 {
			return [3]float32{}, fmt.Errorf("value output too short: %d", len(d))
		}
		copy(result[:], d[:3])
	case []float64:
		if len(d) < 3 {
			return [3]float32{}, fmt.Errorf("value output too short: %d", len(d))
		}
		for i := 0; i < 3; i++ {
			result[i] = float32(d[i])
		}
	default:
		return [3]float32{}, fmt.Errorf("unexpected value output type %T", out.Data())
	}

	return result, nil
}
