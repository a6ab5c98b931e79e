package main

import (
	"crypto/rand"
	"fmt"
	"log"

	"github.com/elmeriniemela/bitcoinlib/bip38"
	"github.com/elmeriniemela/bitcoinlib/cointype"
	"github.com/elmeriniemela/bitcoinlib/hdkey"
	"github.com/elmeriniemela/bitcoinlib/networks"
	"github.com/elmeriniemela/bitcoinlib/tronaddr"
)

func main() {
	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		log.Fatal(err)
	}

	master, err := hdkey.NewMaster(seed, networks.Mainnet)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Master xprv: %s\n", master.Serialize())

	path := fmt.Sprintf("m/44H/%dH/0H/0/0", cointype.Bitcoin)
	account, err := master.SubkeyForPath(path)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s private key WIF: %s\n", path, account.Key().WIF())
	fmt.Printf("%s address: %s\n", path, account.Key().Address())

	tronPath := fmt.Sprintf("m/44H/%dH/0H/0/0", cointype.Tron)
	tronAccount, err := master.SubkeyForPath(tronPath)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("TRON address: %s\n", tronaddr.FromKey(tronAccount.Key()))

	encrypted, err := bip38.Encrypt(account.Key(), "correct horse battery staple")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("BIP-38 encrypted key: %s\n", encrypted)

	decrypted, err := bip38.Decrypt(encrypted, "correct horse battery staple", networks.Mainnet)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Decrypted WIF matches: %v\n", decrypted.WIF() == account.Key().WIF())
}
