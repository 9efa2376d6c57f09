// Package nn provides neural network building blocks: parameters, an
// embedding layer, and a noise contrastive estimation loss with an indexed
// output projection for large vocabularies.
package nn
