// Copyright (c) 2026 The CurateLabs developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tcr

import "math/big"

// Keys of governance params consumed by the registry core.
var (
	KeyMinDeposit      = BytesToBytes32([]byte("min-deposit"))
	KeyApplyStageLen   = BytesToBytes32([]byte("apply-stage-length"))
	KeyVoteQuorum      = BytesToBytes32([]byte("vote-quorum"))
	KeyCommitStageLen  = BytesToBytes32([]byte("commit-stage-length"))
	KeyRevealStageLen  = BytesToBytes32([]byte("reveal-stage-length"))
	KeyDispensationPct = BytesToBytes32([]byte("dispensation-percentage"))
)

// Suggested initial values for governance params. Deployments may override
// all of them through the parameter store.
var (
	InitialMinDeposit      = new(big.Int).Mul(big.NewInt(10), big.NewInt(1e18))
	InitialApplyStageLen   = big.NewInt(60 * 60 * 24 * 3) // 3 days
	InitialVoteQuorum      = big.NewInt(50)               // 50%
	InitialCommitStageLen  = big.NewInt(60 * 60 * 24)     // 1 day
	InitialRevealStageLen  = big.NewInt(60 * 60 * 24)     // 1 day
	InitialDispensationPct = big.NewInt(50)               // 50%
)
