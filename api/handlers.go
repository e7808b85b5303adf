package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/paw-chain/stableswap/x/stableswap/types"
)

func (s *Server) handleHealth(c *gin.Context) {
	if err := s.keeper.CheckAllInvariants(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func poolIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "pool id must be an unsigned integer")
		return 0, false
	}
	return id, true
}

func (s *Server) handleListPools(c *gin.Context) {
	pools, err := s.keeper.ListPools(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	views := make([]PoolView, 0, len(pools))
	for _, p := range pools {
		views = append(views, poolView(p))
	}
	c.JSON(http.StatusOK, gin.H{"pools": views, "count": len(views)})
}

func (s *Server) handleGetPool(c *gin.Context) {
	id, ok := poolIDParam(c)
	if !ok {
		return
	}
	pool, err := s.keeper.GetPool(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, poolView(pool))
}

func (s *Server) handleCreatePool(c *gin.Context) {
	var req CreatePoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	seedA, okA := parseAmount(req.SeedA)
	seedB, okB := parseAmount(req.SeedB)
	if !okA || !okB {
		badRequest(c, "seed amounts must be nonnegative decimal strings")
		return
	}

	params := types.DefaultParams()
	if req.TradeFee != nil {
		params.TradeFee = types.NewFraction(req.TradeFee.Numerator, req.TradeFee.Denominator)
	}
	if req.AdminFee != nil {
		params.AdminFee = types.NewFraction(req.AdminFee.Numerator, req.AdminFee.Denominator)
	}
	if req.ImbalanceFee != nil {
		params.ImbalanceFee = types.NewFraction(req.ImbalanceFee.Numerator, req.ImbalanceFee.Denominator)
	}

	pool, err := s.keeper.CreatePool(c.Request.Context(),
		req.TokenA, req.TokenB, seedA, seedB, req.Amp, params, time.Now().Unix())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, poolView(pool))
}

func (s *Server) handleSpotPrice(c *gin.Context) {
	id, ok := poolIDParam(c)
	if !ok {
		return
	}
	tokenIn := c.Query("token_in")
	if tokenIn == "" {
		badRequest(c, "token_in query parameter required")
		return
	}
	price, err := s.keeper.SpotPrice(c.Request.Context(), id, tokenIn, time.Now().Unix())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token_in": tokenIn, "price": price.String()})
}

func (s *Server) handleQuote(c *gin.Context) {
	id, ok := poolIDParam(c)
	if !ok {
		return
	}
	tokenIn := c.Query("token_in")
	amountIn, okAmt := parseAmount(c.Query("amount_in"))
	if tokenIn == "" || !okAmt {
		badRequest(c, "token_in and amount_in query parameters required")
		return
	}

	result, err := s.keeper.SimulateSwap(c.Request.Context(), id, tokenIn, amountIn, time.Now().Unix())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, SwapResponse{
		TokenIn:   result.TokenIn,
		TokenOut:  result.TokenOut,
		AmountIn:  result.AmountIn.String(),
		AmountOut: result.AmountOut.String(),
		TradeFee:  result.TradeFee.String(),
		AdminFee:  result.AdminFee.String(),
		Pool:      poolView(result.Pool),
	})
}

func (s *Server) handleSwap(c *gin.Context) {
	id, ok := poolIDParam(c)
	if !ok {
		return
	}
	var req SwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	amountIn, okAmt := parseAmount(req.AmountIn)
	minOut, okMin := parseOptionalAmount(req.MinAmountOut)
	if !okAmt || !okMin {
		badRequest(c, "amounts must be nonnegative decimal strings")
		return
	}

	result, err := s.keeper.Swap(c.Request.Context(), id, req.TokenIn, amountIn, minOut, time.Now().Unix())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, SwapResponse{
		TokenIn:   result.TokenIn,
		TokenOut:  result.TokenOut,
		AmountIn:  result.AmountIn.String(),
		AmountOut: result.AmountOut.String(),
		TradeFee:  result.TradeFee.String(),
		AdminFee:  result.AdminFee.String(),
		Pool:      poolView(result.Pool),
	})
}

func (s *Server) handleDeposit(c *gin.Context) {
	id, ok := poolIDParam(c)
	if !ok {
		return
	}
	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	amountA, okA := parseOptionalAmount(req.AmountA)
	amountB, okB := parseOptionalAmount(req.AmountB)
	minMint, okMin := parseOptionalAmount(req.MinPoolTokens)
	if !okA || !okB || !okMin {
		badRequest(c, "amounts must be nonnegative decimal strings")
		return
	}

	result, err := s.keeper.Deposit(c.Request.Context(), id, amountA, amountB, minMint, time.Now().Unix())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, DepositResponse{
		MintedPool: result.MintedPool.String(),
		FeeA:       result.FeeA.String(),
		FeeB:       result.FeeB.String(),
		Pool:       poolView(result.Pool),
	})
}

func (s *Server) handleWithdraw(c *gin.Context) {
	id, ok := poolIDParam(c)
	if !ok {
		return
	}
	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	poolTokens, okPt := parseAmount(req.PoolTokens)
	if !okPt {
		badRequest(c, "pool_tokens must be a nonnegative decimal string")
		return
	}

	var result types.WithdrawResult
	var err error
	switch req.Mode {
	case "", "proportional":
		minA, okA := parseOptionalAmount(req.MinAmountA)
		minB, okB := parseOptionalAmount(req.MinAmountB)
		if !okA || !okB {
			badRequest(c, "minimum amounts must be nonnegative decimal strings")
			return
		}
		result, err = s.keeper.WithdrawProportional(c.Request.Context(), id, poolTokens, minA, minB)
	case "single_asset":
		if req.TokenOut == "" {
			badRequest(c, "token_out required for single_asset withdrawals")
			return
		}
		minOut, okMin := parseOptionalAmount(req.MinAmountOut)
		if !okMin {
			badRequest(c, "min_amount_out must be a nonnegative decimal string")
			return
		}
		result, err = s.keeper.WithdrawSingleAsset(c.Request.Context(), id, req.TokenOut, poolTokens, minOut, time.Now().Unix())
	default:
		badRequest(c, "mode must be proportional or single_asset")
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, WithdrawResponse{
		AmountA:    result.AmountA.String(),
		AmountB:    result.AmountB.String(),
		BurnedPool: result.BurnedPool.String(),
		Pool:       poolView(result.Pool),
	})
}

func (s *Server) handleRampAmp(c *gin.Context) {
	id, ok := poolIDParam(c)
	if !ok {
		return
	}
	var req RampAmpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	pool, err := s.keeper.RampAmp(c.Request.Context(), id,
		req.TargetAmp, req.StartTime, req.StopTime, time.Now().Unix())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, poolView(pool))
}

func (s *Server) handleWithdrawAdminFees(c *gin.Context) {
	id, ok := poolIDParam(c)
	if !ok {
		return
	}
	amountA, amountB, err := s.keeper.WithdrawAdminFees(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"amount_a": amountA.String(),
		"amount_b": amountB.String(),
	})
}
