// Package pumpfun watches the Pump.fun migration account for tokens
// graduating onto a real DEX.
//
// Graduation is detected by polling the migration wallet's signatures and
// inspecting each transaction: the destination is classified by which AMM
// program the transaction invoked, and the graduated mint is read from the
// post-transaction token balances.
package pumpfun
