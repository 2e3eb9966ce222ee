package recommend

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	appErr "github.com/oakmall/oakmall/internal/pkg/errors"
)

const (
	hiddenWidth1 = 64
	hiddenWidth2 = 32

	defaultEpochs          = 20
	defaultValidationSplit = 0.1
	defaultLearningRate    = 0.001

	adamBeta1   = 0.9
	adamBeta2   = 0.999
	adamEpsilon = 1e-8
)

// Network is a dense feed-forward auto-encoder: input -> 64 ReLU -> 32 ReLU ->
// input-width sigmoid. It maps a user's binary presence vector back onto
// itself; after training, the reconstructed coordinates are read as per-item
// affinity scores in (0,1).
//
// A Network is ephemeral. It is trained once per recommendation request and
// discarded; nothing is persisted or shared across requests.
type Network struct {
	// sizes holds the width of every layer, input layer included.
	sizes []int
	// weights[layer][neuron][input], biases[layer][neuron]; layer 0 is the
	// first hidden layer.
	weights [][][]float64
	biases  [][]float64
}

func newNetwork(inputSize int, rng *rand.Rand) *Network {
	sizes := []int{inputSize, hiddenWidth1, hiddenWidth2, inputSize}
	n := &Network{
		sizes:   sizes,
		weights: make([][][]float64, len(sizes)-1),
		biases:  make([][]float64, len(sizes)-1),
	}
	for layer := 0; layer < len(sizes)-1; layer++ {
		fanIn, fanOut := sizes[layer], sizes[layer+1]
		limit := math.Sqrt(6.0 / float64(fanIn+fanOut))
		n.weights[layer] = make([][]float64, fanOut)
		n.biases[layer] = make([]float64, fanOut)
		for j := 0; j < fanOut; j++ {
			n.weights[layer][j] = make([]float64, fanIn)
			for k := 0; k < fanIn; k++ {
				n.weights[layer][j][k] = rng.Float64()*2*limit - limit
			}
		}
	}
	return n
}

// InputSize is the vocabulary width the network was built for.
func (n *Network) InputSize() int {
	return n.sizes[0]
}

// forward runs input through every layer and returns all activations, the
// input itself at index 0. Hidden layers use ReLU, the output layer sigmoid.
func (n *Network) forward(input []float64) [][]float64 {
	activations := make([][]float64, len(n.sizes))
	activations[0] = input
	current := input
	last := len(n.weights) - 1
	for layer := 0; layer < len(n.weights); layer++ {
		next := make([]float64, n.sizes[layer+1])
		for j := range next {
			sum := n.biases[layer][j]
			weights := n.weights[layer][j]
			for k, v := range current {
				sum += weights[k] * v
			}
			if layer == last {
				next[j] = sigmoid(sum)
			} else {
				next[j] = relu(sum)
			}
		}
		activations[layer+1] = next
		current = next
	}
	return activations
}

// Predict returns the reconstructed vector for input.
func (n *Network) Predict(input []float64) []float64 {
	activations := n.forward(input)
	return activations[len(activations)-1]
}

// TrainOptions tunes the self-reconstruction fit. Zero values mean the
// defaults the contract fixes: 20 epochs, 10% validation split.
type TrainOptions struct {
	Epochs          int
	ValidationSplit float64
	LearningRate    float64
	// Seed fixes weight initialisation for reproducible tests. 0 seeds from
	// the clock, so two identical requests may rank differently; that
	// nondeterminism is documented behaviour.
	Seed int64
}

func (o TrainOptions) withDefaults() TrainOptions {
	if o.Epochs <= 0 {
		o.Epochs = defaultEpochs
	}
	if o.ValidationSplit <= 0 || o.ValidationSplit >= 1 {
		o.ValidationSplit = defaultValidationSplit
	}
	if o.LearningRate <= 0 {
		o.LearningRate = defaultLearningRate
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	return o
}

// adamState carries first and second moment estimates shaped like the
// network's parameters.
type adamState struct {
	mW, vW [][][]float64
	mB, vB [][]float64
	step   int
}

func newAdamState(n *Network) *adamState {
	st := &adamState{
		mW: make([][][]float64, len(n.weights)),
		vW: make([][][]float64, len(n.weights)),
		mB: make([][]float64, len(n.biases)),
		vB: make([][]float64, len(n.biases)),
	}
	for layer := range n.weights {
		st.mW[layer] = make([][]float64, len(n.weights[layer]))
		st.vW[layer] = make([][]float64, len(n.weights[layer]))
		for j := range n.weights[layer] {
			st.mW[layer][j] = make([]float64, len(n.weights[layer][j]))
			st.vW[layer][j] = make([]float64, len(n.weights[layer][j]))
		}
		st.mB[layer] = make([]float64, len(n.biases[layer]))
		st.vB[layer] = make([]float64, len(n.biases[layer]))
	}
	return st
}

// Train fits a fresh auto-encoder over the given user vectors, every vector
// serving as both input and target. Binary cross-entropy loss, Adam updates,
// a fixed epoch count as the stopping rule. The last ValidationSplit fraction
// of vectors is held out each pass and only scored, never fitted.
func Train(ctx context.Context, vectors [][]float64, opts TrainOptions) (*Network, error) {
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, fmt.Errorf("%w: empty training set", appErr.ErrTraining)
	}
	opts = opts.withDefaults()

	rng := rand.New(rand.NewSource(opts.Seed))
	network := newNetwork(len(vectors[0]), rng)
	state := newAdamState(network)

	holdout := int(float64(len(vectors)) * opts.ValidationSplit)
	trainSet := vectors[:len(vectors)-holdout]
	valSet := vectors[len(vectors)-holdout:]
	if len(trainSet) == 0 {
		trainSet = vectors
		valSet = nil
	}

	logger := logutil.GetLogger(ctx).With(
		zap.Int("vocab_size", len(vectors[0])),
		zap.Int("train_users", len(trainSet)),
		zap.Int("val_users", len(valSet)),
	)

	for epoch := 0; epoch < opts.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", appErr.ErrTraining, err)
		}
		var epochLoss float64
		for _, vector := range trainSet {
			loss := network.fitOne(vector, state, opts.LearningRate)
			epochLoss += loss
		}
		epochLoss /= float64(len(trainSet))
		if math.IsNaN(epochLoss) || math.IsInf(epochLoss, 0) {
			return nil, fmt.Errorf("%w: non-finite loss at epoch %d", appErr.ErrTraining, epoch)
		}
		if len(valSet) > 0 {
			var valLoss float64
			for _, vector := range valSet {
				predicted := network.Predict(vector)
				valLoss += binaryCrossEntropy(predicted, vector)
			}
			valLoss /= float64(len(valSet))
			logger.Debug("epoch done", zap.Int("epoch", epoch), zap.Float64("loss", epochLoss), zap.Float64("val_loss", valLoss))
			continue
		}
		logger.Debug("epoch done", zap.Int("epoch", epoch), zap.Float64("loss", epochLoss))
	}
	return network, nil
}

// fitOne runs one forward/backward pass for a single vector and applies Adam
// updates. Returns the sample's BCE loss before the update.
func (n *Network) fitOne(target []float64, state *adamState, learningRate float64) float64 {
	activations := n.forward(target)
	output := activations[len(activations)-1]
	loss := binaryCrossEntropy(output, target)

	// Sigmoid + BCE collapse to (a - y) at the output layer.
	delta := make([]float64, len(output))
	for j := range output {
		delta[j] = output[j] - target[j]
	}

	state.step++
	correction1 := 1 - math.Pow(adamBeta1, float64(state.step))
	correction2 := 1 - math.Pow(adamBeta2, float64(state.step))

	for layer := len(n.weights) - 1; layer >= 0; layer-- {
		prev := activations[layer]
		var nextDelta []float64
		if layer > 0 {
			nextDelta = make([]float64, len(prev))
			for j, d := range delta {
				weights := n.weights[layer][j]
				for k := range prev {
					nextDelta[k] += weights[k] * d
				}
			}
			// ReLU derivative: gradient only flows through active units.
			for k := range nextDelta {
				if prev[k] <= 0 {
					nextDelta[k] = 0
				}
			}
		}
		for j, d := range delta {
			for k := range prev {
				grad := d * prev[k]
				state.mW[layer][j][k] = adamBeta1*state.mW[layer][j][k] + (1-adamBeta1)*grad
				state.vW[layer][j][k] = adamBeta2*state.vW[layer][j][k] + (1-adamBeta2)*grad*grad
				mHat := state.mW[layer][j][k] / correction1
				vHat := state.vW[layer][j][k] / correction2
				n.weights[layer][j][k] -= learningRate * mHat / (math.Sqrt(vHat) + adamEpsilon)
			}
			state.mB[layer][j] = adamBeta1*state.mB[layer][j] + (1-adamBeta1)*d
			state.vB[layer][j] = adamBeta2*state.vB[layer][j] + (1-adamBeta2)*d*d
			mHat := state.mB[layer][j] / correction1
			vHat := state.vB[layer][j] / correction2
			n.biases[layer][j] -= learningRate * mHat / (math.Sqrt(vHat) + adamEpsilon)
		}
		delta = nextDelta
	}
	return loss
}

// binaryCrossEntropy averages -(y*log(a) + (1-y)*log(1-a)) over coordinates.
func binaryCrossEntropy(predicted, target []float64) float64 {
	const clip = 1e-12
	var sum float64
	for i := range predicted {
		a := predicted[i]
		if a < clip {
			a = clip
		}
		if a > 1-clip {
			a = 1 - clip
		}
		sum += -(target[i]*math.Log(a) + (1-target[i])*math.Log(1-a))
	}
	return sum / float64(len(predicted))
}

func relu(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
