package address

import (
	"sort"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/pkg/errors"

	"github.com/Amr-9/hexkey/pkg/cryptoerr"
)

// DefaultParams is used wherever a nil *chaincfg.Params is passed.
var DefaultParams = &chaincfg.MainNetParams

var networks = map[string]*chaincfg.Params{
	"mainnet":  &chaincfg.MainNetParams,
	"testnet":  &chaincfg.TestNet3Params,
	"testnet3": &chaincfg.TestNet3Params,
	"regtest":  &chaincfg.RegressionNetParams,
	"signet":   &chaincfg.SigNetParams,
	"simnet":   &chaincfg.SimNetParams,
}

// Params returns the network parameters registered under name
// (mainnet, testnet3, regtest, signet or simnet). An empty name is mainnet.
func Params(name string) (*chaincfg.Params, error) {
	if name == "" {
		return DefaultParams, nil
	}
	p, ok := networks[strings.ToLower(name)]
	if !ok {
		return nil, errors.Wrapf(cryptoerr.ErrInvalidParameter, "unknown network %q (known: %s)", name, strings.Join(Networks(), ", "))
	}
	return p, nil
}

// Networks lists the accepted network names.
func Networks() []string {
	names := make([]string, 0, len(networks))
	for name := range networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func resolve(params *chaincfg.Params) *chaincfg.Params {
	if params == nil {
		return DefaultParams
	}
	return params
}
