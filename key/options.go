package key

import "github.com/elmeriniemela/bitcoinlib/networks"

// Option configures a constructor. The zero value of every Option field
// means "use the shape-appropriate default" — see each constructor's doc
// comment for what that default is.
type Option func(*options)

type options struct {
	compressed *bool
	network    *networks.Params
}

// WithCompressed overrides the default compressed flag a constructor would
// otherwise pick for its input shape.
func WithCompressed(c bool) Option {
	return func(o *options) { o.compressed = &c }
}

// WithNetwork selects the network version bytes used for WIF and address
// encoding. Constructors that parse a version byte (FromWIF, Parse on a
// Base58Check string) infer the network from that byte instead and ignore
// this option.
func WithNetwork(n *networks.Params) Option {
	return func(o *options) { o.network = n }
}

func buildOptions(opts []Option) *options {
	o := &options{}
	for _, apply := range opts {
		apply(o)
	}
	if o.network == nil {
		o.network = networks.Mainnet
	}
	return o
}

func (o *options) compressedOr(def bool) bool {
	if o.compressed != nil {
		return *o.compressed
	}
	return def
}
