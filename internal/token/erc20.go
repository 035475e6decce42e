package token

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/blues/fes/internal/config"
	"github.com/blues/fes/internal/logger"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ERC20代币ABI定义（简化版，只包含划转所需方法）
const erc20ABI = `[
	{
		"constant": false,
		"inputs": [
			{"name": "to", "type": "address"},
			{"name": "value", "type": "uint256"}
		],
		"name": "transfer",
		"outputs": [{"name": "", "type": "bool"}],
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [
			{"name": "from", "type": "address"},
			{"name": "to", "type": "address"},
			{"name": "value", "type": "uint256"}
		],
		"name": "transferFrom",
		"outputs": [{"name": "", "type": "bool"}],
		"type": "function"
	}
]`

// ERC20Gateway 基于ERC20代币合约的资产划转网关
// 入金使用 transferFrom（捐款人需预先 approve 托管账户），
// 出金由托管账户私钥签名 transfer
type ERC20Gateway struct {
	client     *ethclient.Client
	contract   *bind.BoundContract
	privateKey *ecdsa.PrivateKey
	tokenAddr  common.Address
	custody    common.Address
	chainId    *big.Int
}

// Init 创建ERC20网关
func Init(cfg config.ChainConfig) (*ERC20Gateway, error) {
	// 连接以太坊客户端
	client, err := ethclient.Dial(cfg.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ethereum client: %w", err)
	}

	// 解析托管账户私钥
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	// 解析ABI
	parsedABI, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ERC20 ABI: %w", err)
	}

	tokenAddr := common.HexToAddress(cfg.TokenAddress)
	contract := bind.NewBoundContract(tokenAddr, parsedABI, client, client, client)

	custody := common.HexToAddress(cfg.CustodyAddress)
	if cfg.CustodyAddress == "" {
		custody = crypto.PubkeyToAddress(privateKey.PublicKey)
	}

	return &ERC20Gateway{
		client:     client,
		contract:   contract,
		privateKey: privateKey,
		tokenAddr:  tokenAddr,
		custody:    custody,
		chainId:    big.NewInt(cfg.ChainId),
	}, nil
}

// CustodyAddress 获取托管账户地址
func (g *ERC20Gateway) CustodyAddress() string {
	return g.custody.Hex()
}

// TransferInto 捐款入金：transferFrom(from -> to)
func (g *ERC20Gateway) TransferInto(ctx context.Context, from, to string, amount int64) error {
	return g.transact(ctx, "transferFrom",
		common.HexToAddress(from), common.HexToAddress(to), big.NewInt(amount))
}

// TransferOut 出金：由托管账户签名 transfer(to)
func (g *ERC20Gateway) TransferOut(ctx context.Context, from, to string, amount int64) error {
	if common.HexToAddress(from) != g.custody {
		return fmt.Errorf("transfer out from non-custody account %s", from)
	}
	return g.transact(ctx, "transfer", common.HexToAddress(to), big.NewInt(amount))
}

// transact 发送交易并等待上链，回执状态非成功视为失败
func (g *ERC20Gateway) transact(ctx context.Context, method string, params ...interface{}) error {
	auth, err := bind.NewKeyedTransactorWithChainID(g.privateKey, g.chainId)
	if err != nil {
		return fmt.Errorf("failed to create transactor: %w", err)
	}
	auth.Context = ctx

	tx, err := g.contract.Transact(auth, method, params...)
	if err != nil {
		return fmt.Errorf("failed to send %s transaction: %w", method, err)
	}

	receipt, err := bind.WaitMined(ctx, g.client, tx)
	if err != nil {
		return fmt.Errorf("failed to wait for %s transaction %s: %w", method, tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("%s transaction %s reverted", method, tx.Hash().Hex())
	}

	logger.Debug("Token %s mined, tx=%s", method, tx.Hash().Hex())
	return nil
}
