package token

import (
	"context"
)

// Gateway 资产划转能力
// 核心只依赖这一层：把若干最小单位的代币从一个账户移到另一个账户，
// 并得知成功或失败。失败原因对核心不透明。
type Gateway interface {
	// TransferInto 捐款入金：从捐款人账户划入托管账户
	TransferInto(ctx context.Context, from, to string, amount int64) error

	// TransferOut 出金：从托管账户划给受益人或退款给捐款人
	TransferOut(ctx context.Context, from, to string, amount int64) error
}
