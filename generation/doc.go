// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
Package generation 实现对 Pollinations 风格 GET 端点的图像生成请求。

# 流程

 1. Request.Validate：空提示词、未知模型/风格/质量模式、尺寸与输出数校验，
    失败返回 types.ErrInvalidRequest，不发起任何网络请求
 2. prompt.Compose 追加风格与 HD 片段
 3. optimizer.Resolve 推导 steps / guidance
 4. DeriveSeeds：显式 seed 按输出下标递增，-1 为每个输出独立随机
 5. 逐个输出发起 GET {endpoint}/image/{text}?model&width&height&seed...
 6. 载荷写入 media.Store，Result.URL 为句柄

任意一个输出失败（非 2xx、超时、网络错误）整批失败，已生成的句柄被释放，
不返回部分结果。本组件不做自动重试。

Config.Concurrency > 1 时使用 errgroup 有界并行，seed 仍由下标决定，
结果按下标顺序返回。
*/
package generation
